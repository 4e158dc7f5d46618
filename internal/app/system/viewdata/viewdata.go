// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/navigation"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the header and page titles.
const SiteName = "Lords Admin Panel"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, h.Flash, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from the session Store)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Menu        []navigation.Item

	// CSRF protection
	CSRFToken string

	// One-shot notices queued by the previous request
	Flashes []flash.Message
}

// NewBaseVM creates a fully populated BaseVM for a page. It consumes
// pending flash messages, so it must be called before the body is written.
// msgs may be nil.
func NewBaseVM(w http.ResponseWriter, r *http.Request, msgs *flash.Messenger, title, backDefault string) BaseVM {
	sess := session.Current(r)
	current := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  sess.Present(),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: current,
		CSRFToken:   csrf.Token(r),
	}
	if sess.Present() {
		vm.UserName = sess.User.DisplayName()
		vm.Role = sess.User.Role()
		vm.Menu = navigation.Menu(r.URL.Path)
	}
	if msgs != nil {
		vm.Flashes = msgs.Pop(w, r)
	}
	return vm
}
