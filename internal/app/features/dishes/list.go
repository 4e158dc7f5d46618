// internal/app/features/dishes/list.go
package dishes

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type dishCard struct {
	ID          string
	Name        string
	Description template.HTML
	Image       string
	Price       string
	Category    string
	Diet        string
	Portion     string
}

type listData struct {
	viewdata.BaseVM
	Dishes []dishCard
}

func newDishCard(d models.Dish) dishCard {
	return dishCard{
		ID:          d.ID,
		Name:        d.Name,
		Description: htmlsanitize.PrepareForDisplay(d.Description),
		Image:       d.Image,
		Price:       viewdata.Money(d.Price),
		Category:    d.Category,
		Diet:        d.Diet(),
		Portion:     d.Portion(),
	}
}

// ServeList handles GET /dishes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list dishes")
	defer cancel()

	dishes, err := h.api(r).ListDishes(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list dishes failed", err, "Server error while fetching dishes.", "/")
		return
	}

	cards := make([]dishCard, 0, len(dishes))
	for _, d := range dishes {
		cards = append(cards, newDishCard(d))
	}

	h.Log.Debug("dishes listed", zap.Int("count", len(cards)))

	templates.Render(w, r, "dishes_list", listData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Flash, "Dishes", "/"),
		Dishes: cards,
	})
}
