// internal/app/features/dashboard/views/views.go
package dashboardviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// TemplateName is the page the dashboard handler renders: summary cards,
// the revenue trend bars and the dietary breakdown.
const TemplateName = "dashboard"

//go:embed templates/dashboard.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "dashboard",
		FS:       FS,
		Patterns: []string{"templates/dashboard.gohtml"},
	})
}
