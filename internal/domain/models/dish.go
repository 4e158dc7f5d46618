// internal/domain/models/dish.go
package models

import "strings"

// Dish categories accepted by the backend.
const (
	CategorySnacks     = "snacks"
	CategoryStarters   = "starters"
	CategoryMainCourse = "main-course"
	CategoryDessert    = "dessert"
)

// Portion sizes.
const (
	PortionHalf = "half"
	PortionFull = "full"
)

// Dietary classes.
const (
	DietVeg        = "veg"
	DietNonVeg     = "non-veg"
	DietEggetarian = "eggetarian"
)

// DishCategories lists categories in menu order.
var DishCategories = []string{CategorySnacks, CategoryStarters, CategoryMainCourse, CategoryDessert}

// DishPortions lists the portion options.
var DishPortions = []string{PortionHalf, PortionFull}

// DishDiets lists the dietary options.
var DishDiets = []string{DietVeg, DietNonVeg, DietEggetarian}

// Dish is a menu item as returned by the backend.
//
// The backend spells the dietary field "dietory" on reads and accepts
// "dietary" on writes; portion comes back as "portion" or "quantity"
// depending on the record's age. Diet and Portion smooth that over.
type Dish struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Dietory     string  `json:"dietory,omitempty"`
	Dietary     string  `json:"dietary,omitempty"`
	Quantity    string  `json:"quantity,omitempty"`
	PortionName string  `json:"portion,omitempty"`
}

// Diet returns the dietary class whichever spelling carried it.
func (d Dish) Diet() string {
	if d.Dietory != "" {
		return d.Dietory
	}
	return d.Dietary
}

// Portion returns the portion size whichever field carried it.
func (d Dish) Portion() string {
	if d.PortionName != "" {
		return d.PortionName
	}
	return d.Quantity
}

// DishInput is the body for creating or replacing a dish.
type DishInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Dietary     string  `json:"dietary"`
	Quantity    string  `json:"quantity"`
}

// NewDishInput returns the form defaults: full portion, starters, veg.
func NewDishInput() DishInput {
	return DishInput{
		Quantity: PortionFull,
		Category: CategoryStarters,
		Dietary:  DietVeg,
	}
}

// InputFrom copies a dish into an editable input.
func (d Dish) InputFrom() DishInput {
	in := DishInput{
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		Price:       d.Price,
		Category:    d.Category,
		Dietary:     d.Diet(),
		Quantity:    d.Portion(),
	}
	def := NewDishInput()
	if in.Category == "" {
		in.Category = def.Category
	}
	if in.Dietary == "" {
		in.Dietary = def.Dietary
	}
	if in.Quantity == "" {
		in.Quantity = def.Quantity
	}
	return in
}

// ValidOption reports whether v (case-insensitive) is one of opts.
func ValidOption(v string, opts []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}
