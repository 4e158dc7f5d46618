package navigation

import "strings"

// Item is one entry in the sidebar.
type Item struct {
	Label  string
	Path   string
	Icon   string
	Active bool
}

var menu = []Item{
	{Label: "Dashboard", Path: "/", Icon: "chart"},
	{Label: "Dishes", Path: "/dishes", Icon: "utensils"},
	{Label: "Orders", Path: "/orders", Icon: "receipt"},
	{Label: "Tables", Path: "/tables", Icon: "table"},
	{Label: "Customers", Path: "/customers", Icon: "users"},
}

// Menu returns the sidebar entries with the one owning current marked
// active. "/" is only active on the root itself.
func Menu(current string) []Item {
	out := make([]Item, len(menu))
	for i, it := range menu {
		if it.Path == "/" {
			it.Active = current == "/"
		} else {
			it.Active = current == it.Path || strings.HasPrefix(current, it.Path+"/")
		}
		out[i] = it
	}
	return out
}
