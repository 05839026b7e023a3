// Package apiversion is the registry of public API versions.
//
// Compatibility policy:
//   - routes under the current version's prefix keep their path suffixes, response
//     shapes and status codes for as long as that version is served;
//   - breaking changes are released only under the next version's prefix, as new
//     or overridden routes, never by editing a current-version route in place;
//   - both versions are served side by side until every client has migrated.
package apiversion

import (
	"errors"
	"fmt"
	"strings"
)

// Version identifiers.
const (
	CurrentVersion = "v1"
	NextVersion    = "v2"
)

var (
	// ErrInvalidPrefix is returned for a prefix that is not an absolute path
	// without a trailing slash.
	ErrInvalidPrefix = errors.New("invalid API prefix")
	// ErrOverlappingPrefix is returned when two prefixes are equal or one is a
	// path-segment prefix of the other.
	ErrOverlappingPrefix = errors.New("overlapping API prefixes")
)

// Stage tells whether a version is contract-stable or still in development.
type Stage int

const (
	// StageCurrent marks the stable version existing clients use.
	StageCurrent Stage = iota
	// StageNext marks the version where breaking changes land.
	StageNext
)

func (s Stage) String() string {
	switch s {
	case StageCurrent:
		return "current"
	case StageNext:
		return "next"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Descriptor describes one API version.
type Descriptor struct {
	ID     string
	Prefix string
	Stage  Stage
}

// Registry holds the current and next version descriptors.
type Registry struct {
	current Descriptor
	next    Descriptor
}

// New builds a registry serving CurrentVersion at currentPrefix and reserving
// NextVersion at nextPrefix.
func New(currentPrefix, nextPrefix string) (*Registry, error) {
	current := Descriptor{ID: CurrentVersion, Prefix: currentPrefix, Stage: StageCurrent}
	next := Descriptor{ID: NextVersion, Prefix: nextPrefix, Stage: StageNext}

	for _, d := range []Descriptor{current, next} {
		if err := validatePrefix(d.Prefix); err != nil {
			return nil, fmt.Errorf("%s: %w", d.ID, err)
		}
	}

	if Overlaps(current.Prefix, next.Prefix) {
		return nil, fmt.Errorf("%w: %s (%s) and %s (%s)",
			ErrOverlappingPrefix, current.ID, current.Prefix, next.ID, next.Prefix)
	}

	return &Registry{current: current, next: next}, nil
}

// Current returns the contract-stable version.
func (r *Registry) Current() Descriptor { return r.current }

// Next returns the in-development version.
func (r *Registry) Next() Descriptor { return r.next }

// All returns every descriptor, current first.
func (r *Registry) All() []Descriptor {
	return []Descriptor{r.current, r.next}
}

// Lookup finds a descriptor by identifier.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	for _, d := range r.All() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Note is the human-readable versioning policy attached to the app description.
func (r *Registry) Note() string {
	return fmt.Sprintf("Current API: %s (%s). Breaking changes must be released in %s.",
		r.current.ID, r.current.Prefix, r.next.ID)
}

// Overlaps reports whether a and b are equal or one contains the other on a
// path-segment boundary. "/api/v1" overlaps "/api/v1/beta" but not "/api/v10".
func Overlaps(a, b string) bool {
	return a == b || HasPathPrefix(a, b) || HasPathPrefix(b, a)
}

// HasPathPrefix reports whether path equals prefix or continues it with a "/".
func HasPathPrefix(path, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func validatePrefix(p string) error {
	switch {
	case p == "" || p == "/":
		return fmt.Errorf("%w: %q must name a path segment", ErrInvalidPrefix, p)
	case !strings.HasPrefix(p, "/"):
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPrefix, p)
	case strings.HasSuffix(p, "/"):
		return fmt.Errorf("%w: %q must not end with /", ErrInvalidPrefix, p)
	case strings.Contains(p, "//"):
		return fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPrefix, p)
	case strings.ContainsAny(p, ":*?#"):
		return fmt.Errorf("%w: %q must be a static path", ErrInvalidPrefix, p)
	}
	return nil
}
