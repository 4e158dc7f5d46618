// internal/app/features/dashboard/activity.go
package dashboard

import (
	"context"
	"time"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// LoginHistory is the read side of the login history store.
type LoginHistory interface {
	Recent(ctx context.Context, username string, limit int64) ([]models.LoginRecord, error)
}

// AuditTrail is the read side of the audit store.
type AuditTrail interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
	GetFailedLogins(ctx context.Context, since time.Time, limit int64) ([]audit.Event, error)
}

// Activity feeds the panel activity section. Both stores only exist when
// MongoDB is configured; a nil *Activity hides the section.
type Activity struct {
	Logins LoginHistory
	Audit  AuditTrail
	Now    func() time.Time
}

const activityRows = 5

type loginRow struct {
	Username string
	When     string
	IP       string
	OK       bool
	Reason   string
}

type changeRow struct {
	Username string
	When     string
	Event    string
	Target   string
}

type activityView struct {
	RecentLogins []loginRow
	FailedLogins []loginRow
	Changes      []changeRow
	ChangesToday int64
	Unavailable  bool
}

var eventLabels = map[string]string{
	audit.EventDishCreated:          "Dish created",
	audit.EventDishUpdated:          "Dish updated",
	audit.EventDishDeleted:          "Dish deleted",
	audit.EventOrderStatusChanged:   "Order status changed",
	audit.EventTableCreated:         "Table created",
	audit.EventTableAvailability:    "Table availability changed",
	audit.EventTableDeleted:         "Table deleted",
	audit.EventLoginFailedRejected:  "Rejected",
	audit.EventLoginFailedBackend:   "Backend unreachable",
	audit.EventLoginFailedRateLimit: "Rate limited",
}

func eventLabel(eventType string) string {
	if l, ok := eventLabels[eventType]; ok {
		return l
	}
	return eventType
}

// changeTarget picks the detail that names what an admin event touched.
func changeTarget(d map[string]string) string {
	if no := d["table_no"]; no != "" {
		return "Table " + no
	}
	for _, k := range []string{"name", "dish_id", "order_id", "table_id"} {
		if v := d[k]; v != "" {
			return v
		}
	}
	return ""
}

// load reads the activity section. Any store error marks the section
// unavailable; the rest of the dashboard is unaffected.
func (a *Activity) load(ctx context.Context, log *zap.Logger) *activityView {
	if a == nil || (a.Logins == nil && a.Audit == nil) {
		return nil
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	since := now().Add(-24 * time.Hour)
	v := &activityView{}

	fail := func(what string, err error) {
		log.Warn("dashboard activity unavailable", zap.String("read", what), zap.Error(err))
		v.Unavailable = true
	}

	if a.Logins != nil {
		recs, err := a.Logins.Recent(ctx, "", activityRows)
		if err != nil {
			fail("recent logins", err)
		}
		for _, rec := range recs {
			v.RecentLogins = append(v.RecentLogins, loginRow{
				Username: rec.Username,
				When:     viewdata.DateTime(rec.CreatedAt),
				IP:       rec.IP,
				OK:       rec.Success,
				Reason:   rec.Reason,
			})
		}
	}

	if a.Audit != nil {
		failed, err := a.Audit.GetFailedLogins(ctx, since, activityRows)
		if err != nil {
			fail("failed logins", err)
		}
		for _, e := range failed {
			v.FailedLogins = append(v.FailedLogins, loginRow{
				Username: e.Username,
				When:     viewdata.DateTime(e.Timestamp),
				IP:       e.IP,
				Reason:   eventLabel(e.EventType),
			})
		}

		changes, err := a.Audit.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin, Limit: activityRows})
		if err != nil {
			fail("recent changes", err)
		}
		for _, e := range changes {
			v.Changes = append(v.Changes, changeRow{
				Username: e.Username,
				When:     viewdata.DateTime(e.Timestamp),
				Event:    eventLabel(e.EventType),
				Target:   changeTarget(e.Details),
			})
		}

		n, err := a.Audit.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAdmin, StartTime: &since})
		if err != nil {
			fail("change count", err)
		}
		v.ChangesToday = n
	}
	return v
}
