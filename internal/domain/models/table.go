// internal/domain/models/table.go
package models

import "time"

// DefaultSeatingCap is the seating capacity preselected on the create form.
const DefaultSeatingCap = 2

// Table is a dining table.
type Table struct {
	ID          string       `json:"_id"`
	TableNo     int          `json:"tableNo"`
	SeatingCap  int          `json:"seatingCap"`
	IsAvailable bool         `json:"isAvailable"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// Reserved reports whether a reservation window should be shown.
func (t Table) Reserved() bool {
	return !t.IsAvailable && t.Reservation != nil
}

// Reservation is the window a table is held for.
type Reservation struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// TableInput is the body for creating a table.
type TableInput struct {
	TableNo     int  `json:"tableNo"`
	SeatingCap  int  `json:"seatingCap"`
	IsAvailable bool `json:"isAvailable"`
}
