package domain

// VersionResponse is the body of GET {prefix}/version.
type VersionResponse struct {
	Version string `json:"version"`
}
