// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type dishFormData struct {
//		formutil.Base
//		Input      models.DishInput
//		Categories []string
//	}
//
//	// In your handler:
//	data := dishFormData{Input: in}
//	formutil.SetBase(&data.Base, w, r, h.Flash, "Add Dish", "/dishes")
//	data.SetError("Name is required.")
//	templates.Render(w, r, "dish_form", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request.
//
// Parameters:
//   - b: pointer to the Base struct to populate
//   - w, r: the response and request (pending flashes are consumed)
//   - msgs: the flash messenger, may be nil
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, msgs *flash.Messenger, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, msgs, title, backDefault)
}

// SetError sets the error message on a Base struct. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// ParseLimited caps the request body at max bytes and parses the form.
func ParseLimited(w http.ResponseWriter, r *http.Request, max int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, max)
	return r.ParseForm()
}
