package router

// Entry describes one registered endpoint. Version is empty for system routes.
type Entry struct {
	Method  string
	Path    string
	Version string
	Name    string
	Tags    []string
}

// Manifest lists every registered endpoint, versioned mounts first in mount order,
// then system routes.
type Manifest []Entry

// Find looks up an entry by method and full path.
func (m Manifest) Find(method, path string) (Entry, bool) {
	for _, e := range m {
		if e.Method == method && e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Versioned returns the entries belonging to the given API version.
func (m Manifest) Versioned(version string) Manifest {
	var out Manifest
	for _, e := range m {
		if e.Version == version {
			out = append(out, e)
		}
	}
	return out
}
