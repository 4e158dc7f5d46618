// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/dishes").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to carry onto the fallback.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && allowed(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param != "" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + opts.PreserveQueryParam + "=" + param
		}
	}
	return fallback
}

func allowed(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return false
		}
	}
	return true
}

// Back URL configurations for the resource views.
var (
	DishesBackURL = BackURLOptions{
		AllowedPrefix:    "/dishes",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/dishes",
	}

	OrdersBackURL = BackURLOptions{
		AllowedPrefix:    "/orders",
		ExcludedSubpaths: []string{"/status"},
		Fallback:         "/orders",
	}

	TablesBackURL = BackURLOptions{
		AllowedPrefix:    "/tables",
		ExcludedSubpaths: []string{"/delete", "/availability"},
		Fallback:         "/tables",
	}
)
