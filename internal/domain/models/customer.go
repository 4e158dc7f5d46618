// internal/domain/models/customer.go
package models

import "time"

// Customer is a registered diner.
type Customer struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address,omitempty"`
	Visits        int       `json:"visits"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}
