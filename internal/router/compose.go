package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/apiversion"
)

var (
	// ErrDuplicateMount is returned when two mounts share or nest the same prefix.
	ErrDuplicateMount = errors.New("duplicate mount")
	// ErrRouteConflict is returned when a system route would shadow or duplicate
	// a versioned API route outside its version prefix.
	ErrRouteConflict = errors.New("route conflict")
)

// Mount binds a route table to an API version prefix.
type Mount struct {
	Descriptor apiversion.Descriptor
	Table      *Table
}

// Compose validates the mounts and system routes as a whole and, only if they are
// consistent, registers them on root: each mount under its version prefix and
// system routes at the root. A nil system table is treated as empty. Paths that
// differ only in wildcard names count as duplicates, and any other pattern gin
// would refuse is reported as ErrRouteConflict before root is touched.
func Compose(root gin.IRouter, mounts []Mount, system *Table) (Manifest, error) {
	if system == nil {
		system = NewTable("system")
	}

	manifest, err := plan(mounts, system)
	if err != nil {
		return nil, err
	}

	if err := rehearse(mounts, system); err != nil {
		return nil, err
	}

	register(root, mounts, system)
	return manifest, nil
}

func register(root gin.IRouter, mounts []Mount, system *Table) {
	for _, m := range mounts {
		group := root.Group(m.Descriptor.Prefix)
		for _, r := range m.Table.Routes() {
			group.Handle(r.Method, r.Path, r.Handler)
		}
	}
	for _, r := range system.Routes() {
		root.Handle(r.Method, r.Path, r.Handler)
	}
}

// rehearse registers everything on a scratch engine so that gin's own tree
// conflicts surface as errors instead of panics on the real engine.
func rehearse(mounts []Mount, system *Table) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRouteConflict, r)
		}
	}()

	register(gin.New(), mounts, system)
	return nil
}

// patternKey maps a path to the shape gin matches on: wildcard names are dropped.
func patternKey(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			segments[i] = ":"
		case strings.HasPrefix(seg, "*"):
			segments[i] = "*"
		}
	}
	return strings.Join(segments, "/")
}

func plan(mounts []Mount, system *Table) (Manifest, error) {
	var (
		manifest Manifest
		seen     = make(map[string]string)
		suffixes = make(map[string]string)
	)

	add := func(method, path, source string) error {
		key := method + " " + patternKey(path)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s %s (%s) clashes with %s", ErrDuplicateRoute, method, path, source, prev)
		}
		seen[key] = fmt.Sprintf("%s %s (%s)", method, path, source)
		return nil
	}

	for i, m := range mounts {
		if m.Table == nil {
			return nil, fmt.Errorf("%w: mount %s has no table", ErrInvalidRoute, m.Descriptor.ID)
		}
		for _, other := range mounts[:i] {
			if apiversion.Overlaps(other.Descriptor.Prefix, m.Descriptor.Prefix) {
				return nil, fmt.Errorf("%w: %s (%s) and %s (%s)", ErrDuplicateMount,
					other.Descriptor.ID, other.Descriptor.Prefix, m.Descriptor.ID, m.Descriptor.Prefix)
			}
		}

		for _, r := range m.Table.Routes() {
			full := m.Descriptor.Prefix + r.Path
			if err := add(r.Method, full, m.Descriptor.ID); err != nil {
				return nil, err
			}
			suffixes[patternKey(r.Path)] = m.Descriptor.ID
			manifest = append(manifest, Entry{
				Method:  r.Method,
				Path:    full,
				Version: m.Descriptor.ID,
				Name:    r.Name,
				Tags:    r.Tags,
			})
		}
	}

	for _, r := range system.Routes() {
		for _, m := range mounts {
			if apiversion.HasPathPrefix(r.Path, m.Descriptor.Prefix) {
				return nil, fmt.Errorf("%w: system route %s lies under %s prefix %s",
					ErrRouteConflict, r.Key(), m.Descriptor.ID, m.Descriptor.Prefix)
			}
		}
		if version, ok := suffixes[patternKey(r.Path)]; ok {
			return nil, fmt.Errorf("%w: system route %s duplicates a %s route at the root",
				ErrRouteConflict, r.Key(), version)
		}
		if err := add(r.Method, r.Path, system.Name()); err != nil {
			return nil, err
		}
		manifest = append(manifest, Entry{
			Method: r.Method,
			Path:   r.Path,
			Name:   r.Name,
			Tags:   r.Tags,
		})
	}

	return manifest, nil
}
