// internal/app/system/limits/limits.go
package limits

// Body caps passed to formutil.ParseLimited.
const (
	// MaxFormSize covers login, order status, and table forms.
	MaxFormSize = 64 << 10

	// MaxDishFormSize is larger since dish forms carry a description and an
	// image URL.
	MaxDishFormSize = 256 << 10
)
