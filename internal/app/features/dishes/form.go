// internal/app/features/dishes/form.go
package dishes

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/formutil"
	"github.com/dalemusser/lordsadmin/internal/app/system/inputval"
	"github.com/dalemusser/lordsadmin/internal/app/system/limits"
	"github.com/dalemusser/lordsadmin/internal/app/system/navigation"
	"github.com/dalemusser/lordsadmin/internal/app/system/normalize"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// dishForm is the submitted form, tagged for inputval.
type dishForm struct {
	Name        string  `validate:"required,max=80" label:"Name"`
	Description string  `validate:"max=2000" label:"Description"`
	Image       string  `validate:"httpurl" label:"Image URL"`
	Price       float64 `validate:"gt=0" label:"Price"`
	Category    string  `validate:"required,oneof=snacks starters main-course dessert" label:"Category"`
	Dietary     string  `validate:"required,oneof=veg non-veg eggetarian" label:"Dietary"`
	Quantity    string  `validate:"required,oneof=half full" label:"Quantity"`
}

func (f dishForm) input() models.DishInput {
	return models.DishInput{
		Name:        f.Name,
		Description: f.Description,
		Image:       f.Image,
		Price:       f.Price,
		Category:    f.Category,
		Dietary:     f.Dietary,
		Quantity:    f.Quantity,
	}
}

type formData struct {
	formutil.Base

	DishID     string // empty on the create form
	Action     string
	PriceText  string
	Input      models.DishInput
	Categories []string
	Diets      []string
	Portions   []string
}

// parseDishForm reads the posted fields. It returns the input to echo back
// and the first validation message, or "".
func parseDishForm(r *http.Request) (models.DishInput, string, string) {
	priceText := strings.TrimSpace(r.PostForm.Get("price"))
	f := dishForm{
		Name:        normalize.Name(r.PostForm.Get("name")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Image:       strings.TrimSpace(r.PostForm.Get("image")),
		Category:    normalize.Option(r.PostForm.Get("category")),
		Dietary:     normalize.Option(r.PostForm.Get("dietary")),
		Quantity:    normalize.Option(r.PostForm.Get("quantity")),
	}

	var priceErr string
	if priceText != "" {
		p, err := strconv.ParseFloat(priceText, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			priceErr = "Price must be a number."
			p = 0
		}
		f.Price = p
	}

	res := inputval.Validate(f)
	if priceErr != "" {
		for i := range res.Errors {
			if res.Errors[i].Field == "Price" {
				res.Errors[i].Message = priceErr
			}
		}
	}
	return f.input(), priceText, res.First()
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, id string, in models.DishInput, priceText, errMsg string) {
	data := formData{
		DishID:     id,
		Input:      in,
		PriceText:  priceText,
		Categories: models.DishCategories,
		Diets:      models.DishDiets,
		Portions:   models.DishPortions,
	}
	title := "Add Dish"
	data.Action = "/dishes"
	if id != "" {
		title = "Edit Dish"
		data.Action = "/dishes/" + id
	}
	formutil.SetBase(&data.Base, w, r, h.Flash, title, "/dishes")
	if errMsg != "" {
		data.SetError(errMsg)
	}
	templates.Render(w, r, "dish_form", data)
}

// ServeNew handles GET /dishes/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", models.NewDishInput(), "", "")
}

// HandleCreate handles POST /dishes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseLimited(w, r, limits.MaxDishFormSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse dish form failed", err, "Invalid form data.", "/dishes")
		return
	}
	in, priceText, msg := parseDishForm(r)
	if msg != "" {
		h.renderForm(w, r, "", in, priceText, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create dish")
	defer cancel()

	if err := h.api(r).CreateDish(ctx, in); err != nil {
		h.Log.Warn("create dish failed", zap.Error(err), zap.String("name", in.Name))
		h.renderForm(w, r, "", in, priceText,
			apiclient.UserMessage(err, "Failed to create dish", "Server error"))
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventDishCreated, map[string]string{"name": in.Name})
	h.Flash.Success(w, r, MsgCreated)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.DishesBackURL), http.StatusSeeOther)
}

// ServeEdit handles GET /dishes/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "find dish")
	defer cancel()

	dish, err := h.api(r).FindDish(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find dish failed", err, "Server error while fetching dishes.", "/dishes")
		return
	}
	if dish == nil {
		h.Flash.Error(w, r, MsgMissing)
		http.Redirect(w, r, "/dishes", http.StatusSeeOther)
		return
	}

	in := dish.InputFrom()
	h.renderForm(w, r, id, in, strconv.FormatFloat(in.Price, 'f', -1, 64), "")
}

// HandleUpdate handles POST /dishes/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := formutil.ParseLimited(w, r, limits.MaxDishFormSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse dish form failed", err, "Invalid form data.", "/dishes")
		return
	}
	in, priceText, msg := parseDishForm(r)
	if msg != "" {
		h.renderForm(w, r, id, in, priceText, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update dish")
	defer cancel()

	if err := h.api(r).UpdateDish(ctx, id, in); err != nil {
		h.Log.Warn("update dish failed", zap.Error(err), zap.String("dish_id", id))
		h.renderForm(w, r, id, in, priceText,
			apiclient.UserMessage(err, "Failed to update dish", "Server error while updating dish"))
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventDishUpdated, map[string]string{"dish_id": id, "name": in.Name})
	h.Flash.Success(w, r, MsgUpdated)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.DishesBackURL), http.StatusSeeOther)
}
