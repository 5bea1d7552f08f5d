package navigation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"auction-client/utils"
)

const (
	appTitle  = "AuctionHub"
	loginPath = "/login/"
)

var (
	ErrRedirected    = errors.New("navigation redirected to login")
	ErrRouteNotFound = errors.New("no route matches path")
)

// Authenticator is the part of the auth container the guard needs.
type Authenticator interface {
	FetchUser(ctx context.Context)
	IsAuthenticated() bool
}

// Navigator performs full-page navigations (login, logout).
type Navigator interface {
	Redirect(path string)
}

// Route is one client-side page.
type Route struct {
	Name  string
	Path  string // segments starting with ':' are parameters
	Title string
}

// Match is a resolved navigation target.
type Match struct {
	Route  Route
	Params map[string]string
}

// Routes is the application's route table.
var Routes = []Route{
	{Name: "Home", Path: "/", Title: "Browse Auctions"},
	{Name: "ItemDetail", Path: "/items/:id", Title: "Item Details"},
	{Name: "Profile", Path: "/profile", Title: "Profile Settings"},
	{Name: "CreateItem", Path: "/create-item", Title: "Create Listing"},
	{Name: "MyAuctions", Path: "/my-auctions", Title: "My Auctions"},
}

// Router gates every route transition on authentication. It owns the
// once-per-load auth check: the first Navigate fetches the user, later ones
// reuse the result.
type Router struct {
	routes []Route
	auth   Authenticator
	nav    Navigator

	mu            sync.Mutex
	authCheckDone bool
	title         string
	current       *Match
}

// NewRouter creates a router over Routes.
func NewRouter(auth Authenticator, nav Navigator) *Router {
	return &Router{routes: Routes, auth: auth, nav: nav, title: appTitle}
}

// Navigate runs the auth guard for path and, if it passes, resolves the
// route and updates the title. Unauthenticated users are redirected to the
// login page and ErrRedirected is returned.
func (r *Router) Navigate(ctx context.Context, path string) (Match, error) {
	r.mu.Lock()
	runCheck := !r.authCheckDone
	r.authCheckDone = true
	r.mu.Unlock()

	if runCheck {
		r.auth.FetchUser(ctx)
	}

	if !r.auth.IsAuthenticated() {
		utils.Info("navigation blocked: not authenticated", map[string]any{"path": path})
		r.nav.Redirect(loginPath)
		return Match{}, ErrRedirected
	}

	match, ok := r.resolve(path)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !ok {
		r.title = appTitle
		return Match{}, ErrRouteNotFound
	}
	r.current = &match
	r.title = pageTitle(match.Route.Title)
	return match, nil
}

// Title is the document title for the current route.
func (r *Router) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title
}

// Current returns the last successfully resolved route.
func (r *Router) Current() (Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Match{}, false
	}
	return *r.current, true
}

func (r *Router) resolve(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	got := splitPath(path)

	for _, route := range r.routes {
		want := splitPath(route.Path)
		if len(want) != len(got) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, seg := range want {
			if strings.HasPrefix(seg, ":") {
				params[seg[1:]] = got[i]
				continue
			}
			if seg != got[i] {
				matched = false
				break
			}
		}
		if matched {
			return Match{Route: route, Params: params}, true
		}
	}
	return Match{}, false
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func pageTitle(title string) string {
	if title == "" {
		return appTitle
	}
	return title + " | " + appTitle
}
