// internal/app/features/customers/search.go
package customers

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// SortKey returns key when it names a sortable column, else "name".
func SortKey(key string) string {
	for _, c := range columns {
		if c.key == key {
			return key
		}
	}
	return "name"
}

// Filter keeps customers whose name, email or address contains q,
// ignoring case. An empty q keeps everyone.
func Filter(in []models.Customer, q string) []models.Customer {
	needle := text.Fold(strings.TrimSpace(q))
	if needle == "" {
		return in
	}
	out := make([]models.Customer, 0, len(in))
	for _, c := range in {
		if strings.Contains(text.Fold(c.Name), needle) ||
			strings.Contains(text.Fold(c.Email), needle) ||
			(c.Address != "" && strings.Contains(text.Fold(c.Address), needle)) {
			out = append(out, c)
		}
	}
	return out
}

// Sort returns a sorted copy. Strings compare case-folded; ties keep the
// backend's order.
func Sort(in []models.Customer, key, dir string) []models.Customer {
	out := slices.Clone(in)
	cmpFn := func(a, b models.Customer) int {
		switch key {
		case "email":
			return cmp.Compare(text.Fold(a.Email), text.Fold(b.Email))
		case "address":
			return cmp.Compare(text.Fold(a.Address), text.Fold(b.Address))
		case "visits":
			return cmp.Compare(a.Visits, b.Visits)
		case "loyaltyPoints":
			return cmp.Compare(a.LoyaltyPoints, b.LoyaltyPoints)
		case "createdAt":
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return cmp.Compare(text.Fold(a.Name), text.Fold(b.Name))
		}
	}
	slices.SortStableFunc(out, func(a, b models.Customer) int {
		if dir == "desc" {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})
	return out
}
