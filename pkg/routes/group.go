package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/neura/pkg/openapi"
)

// Route is a single HTTP endpoint with optional OpenAPI documentation.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// AddToSpec documents the group's routes, and those of its children, in
// spec. Operations without explicit tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g Group) addToSpec(parentPrefix string, spec *openapi.Spec) {
	prefix := parentPrefix + g.Prefix

	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}

		op := r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		path := prefix + r.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch strings.ToUpper(r.Method) {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		}
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec)
	}
}

func (g Group) register(mux *http.ServeMux, parentPrefix string) {
	prefix := parentPrefix + g.Prefix

	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}

	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
