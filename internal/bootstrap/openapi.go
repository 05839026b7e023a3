package bootstrap

import (
	"strings"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/router"
)

const openAPIVersion = "3.1.0"

// OpenAPIDocument is the subset of an OpenAPI 3.1 document generated from the
// route manifest.
type OpenAPIDocument struct {
	OpenAPI string                          `json:"openapi"`
	Info    OpenAPIInfo                     `json:"info"`
	Paths   map[string]map[string]Operation `json:"paths"`
}

// OpenAPIInfo is the document's info object.
type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Operation describes one method on a path.
type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Response describes one response status.
type Response struct {
	Description string `json:"description"`
}

// BuildOpenAPI describes every versioned route in the manifest. System routes
// are left out.
func BuildOpenAPI(info Info, manifest router.Manifest) OpenAPIDocument {
	doc := OpenAPIDocument{
		OpenAPI: openAPIVersion,
		Info: OpenAPIInfo{
			Title:       info.Title,
			Description: info.Description,
			Version:     info.Version,
		},
		Paths: make(map[string]map[string]Operation),
	}

	for _, e := range manifest {
		if e.Version == "" {
			continue
		}

		ops, ok := doc.Paths[e.Path]
		if !ok {
			ops = make(map[string]Operation)
			doc.Paths[e.Path] = ops
		}
		ops[strings.ToLower(e.Method)] = Operation{
			OperationID: e.Version + "_" + e.Name,
			Summary:     summary(e.Name),
			Tags:        e.Tags,
			Responses: map[string]Response{
				"200": {Description: "Successful Response"},
			},
		}
	}

	return doc
}

func summary(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
