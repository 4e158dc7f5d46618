// internal/domain/models/order.go
package models

import (
	"strings"
	"time"
)

// Order statuses, in the order the kitchen moves through them.
const (
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderStatuses is the set an order can be moved to.
var OrderStatuses = []string{OrderPreparing, OrderReady, OrderDelivered, OrderCancelled}

// Order is a customer order.
type Order struct {
	ID          string        `json:"_id"`
	Customer    OrderCustomer `json:"customer"`
	Items       []OrderItem   `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	PaymentMode string        `json:"paymentMode"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ShortID is the last six characters of the id, as shown on order cards.
func (o Order) ShortID() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}

// PaymentLabel capitalizes the payment mode for display.
func (o Order) PaymentLabel() string {
	if o.PaymentMode == "" {
		return ""
	}
	return strings.ToUpper(o.PaymentMode[:1]) + o.PaymentMode[1:]
}

// OrderCustomer is the customer summary embedded in an order.
type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
