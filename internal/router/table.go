// Package router composes versioned route tables onto a gin engine.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrDuplicateRoute is returned when the same method and path are registered twice.
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrRouteNotFound is returned by Override and Remove for an unknown route.
	ErrRouteNotFound = errors.New("route not found")
	// ErrInvalidRoute is returned for a route without method, path or handler.
	ErrInvalidRoute = errors.New("invalid route")
)

// Route is a single endpoint relative to its table's mount point.
type Route struct {
	Method  string
	Path    string
	Name    string
	Tags    []string
	Handler gin.HandlerFunc
}

// Key identifies a route by method and path.
func (r Route) Key() string {
	return r.Method + " " + r.Path
}

// Table is an ordered set of routes making up one API surface.
type Table struct {
	name   string
	routes []Route
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{name: name}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Handle adds a route. Paths differing only in wildcard names are duplicates.
func (t *Table) Handle(route Route) error {
	route.Method = strings.ToUpper(route.Method)
	if err := validateRoute(route); err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	key := patternKey(route.Path)
	if i := slices.IndexFunc(t.routes, func(r Route) bool {
		return r.Method == route.Method && patternKey(r.Path) == key
	}); i >= 0 {
		return fmt.Errorf("%w: %s clashes with %s in %s", ErrDuplicateRoute, route.Key(), t.routes[i].Key(), t.name)
	}

	route.Tags = slices.Clone(route.Tags)
	t.routes = append(t.routes, route)
	return nil
}

// GET adds a GET route.
func (t *Table) GET(path, name string, h gin.HandlerFunc, tags ...string) error {
	return t.Handle(Route{Method: http.MethodGet, Path: path, Name: name, Tags: tags, Handler: h})
}

// Derive returns a new table holding every route of t. Handlers are shared with t;
// changes to the derived table never affect t.
func (t *Table) Derive(name string) *Table {
	return &Table{name: name, routes: t.Routes()}
}

// Override swaps the handler of an existing route.
func (t *Table) Override(method, path string, h gin.HandlerFunc) error {
	if h == nil {
		return fmt.Errorf("%w: nil handler for %s %s", ErrInvalidRoute, method, path)
	}
	i := t.index(strings.ToUpper(method), path)
	if i < 0 {
		return fmt.Errorf("%w: %s %s in %s", ErrRouteNotFound, method, path, t.name)
	}
	t.routes[i].Handler = h
	return nil
}

// Remove deletes a route.
func (t *Table) Remove(method, path string) error {
	i := t.index(strings.ToUpper(method), path)
	if i < 0 {
		return fmt.Errorf("%w: %s %s in %s", ErrRouteNotFound, method, path, t.name)
	}
	t.routes = slices.Delete(t.routes, i, i+1)
	return nil
}

// Routes returns a copy of the routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, r := range t.routes {
		r.Tags = slices.Clone(r.Tags)
		out[i] = r
	}
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int { return len(t.routes) }

func (t *Table) index(method, path string) int {
	return slices.IndexFunc(t.routes, func(r Route) bool {
		return r.Method == method && r.Path == path
	})
}

func validateRoute(r Route) error {
	switch {
	case r.Method == "":
		return fmt.Errorf("%w: missing method for %q", ErrInvalidRoute, r.Path)
	case !strings.HasPrefix(r.Path, "/"):
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, r.Path)
	case r.Handler == nil:
		return fmt.Errorf("%w: nil handler for %s", ErrInvalidRoute, r.Key())
	}
	return nil
}
