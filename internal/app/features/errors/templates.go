// internal/app/features/errors/templates.go
package errors

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// FS holds error_page, shared by the 401, 403, 404 and 500 renderers.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "errors",
		FS:       FS,
		Patterns: []string{"templates/error_page.gohtml"},
	})
}
