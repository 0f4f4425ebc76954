package tui

import (
	"fmt"
	"strconv"

	"programctl/internal/api"
)

// RouteKind names a screen.
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteView
	RouteEdit
	RouteNew
)

// Route is where the app is: the screen, the Program id for view and edit,
// and the list query the user came from so Back can restore it.
type Route struct {
	Kind  RouteKind
	ID    int64
	Query api.ListQuery
}

// ListRoute returns the list screen for q.
func ListRoute(q api.ListQuery) Route {
	return Route{Kind: RouteList, Query: q}
}

// ViewRoute returns the detail screen of id.
func ViewRoute(id int64, q api.ListQuery) Route {
	return Route{Kind: RouteView, ID: id, Query: q}
}

// EditRoute returns the edit form of id.
func EditRoute(id int64, q api.ListQuery) Route {
	return Route{Kind: RouteEdit, ID: id, Query: q}
}

// NewRoute returns the create form.
func NewRoute(q api.ListQuery) Route {
	return Route{Kind: RouteNew, Query: q}
}

func (r Route) String() string {
	switch r.Kind {
	case RouteView:
		return fmt.Sprintf("program %d", r.ID)
	case RouteEdit:
		return fmt.Sprintf("edit program %d", r.ID)
	case RouteNew:
		return "new program"
	default:
		return "programs"
	}
}

// ParseRoute reads the arguments of "ui": none or "list", "view <id>",
// "edit <id>" and "new".
func ParseRoute(args []string, q api.ListQuery) (Route, error) {
	if len(args) == 0 {
		return ListRoute(q), nil
	}

	withID := func() (int64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("%s requires exactly one program id", args[0])
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid program id %q", args[1])
		}
		return id, nil
	}

	switch args[0] {
	case "list":
		if len(args) != 1 {
			return Route{}, fmt.Errorf("list takes no arguments")
		}
		return ListRoute(q), nil
	case "view":
		id, err := withID()
		return ViewRoute(id, q), err
	case "edit":
		id, err := withID()
		return EditRoute(id, q), err
	case "new":
		if len(args) != 1 {
			return Route{}, fmt.Errorf("new takes no arguments")
		}
		return NewRoute(q), nil
	default:
		return Route{}, fmt.Errorf("unknown screen %q (want list, view, edit or new)", args[0])
	}
}
