// internal/app/features/dishes/templates.go
package dishes

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "dishes",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
