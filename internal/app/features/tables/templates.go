// internal/app/features/tables/templates.go
package tables

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "tables",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
