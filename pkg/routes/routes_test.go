package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/neura/pkg/openapi"
	"github.com/JaimeStill/neura/pkg/routes"
)

func handlerFor(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/workspaces",
		Tags:   []string{"Workspaces"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: handlerFor("list"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "GET", Pattern: "/{id}", Handler: handlerFor("find"), OpenAPI: &openapi.Operation{Summary: "Find", Tags: []string{"Custom"}}},
			{Method: "DELETE", Pattern: "/{id}", Handler: handlerFor("delete")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/study-guides",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: handlerFor("upload"), OpenAPI: &openapi.Operation{Summary: "Upload"}},
				},
			},
		},
	}
}

func TestRegister_Mux(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, testGroup())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/workspaces", "list"},
		{"GET", "/workspaces/abc", "find"},
		{"DELETE", "/workspaces/abc", "delete"},
		{"POST", "/workspaces/abc/study-guides", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRegister_Spec(t *testing.T) {
	spec := openapi.NewSpec("test", "1")
	routes.Register(http.NewServeMux(), "/api", spec, testGroup())

	list := spec.Paths["/api/workspaces"]
	if list == nil || list.Get == nil {
		t.Fatalf("missing /api/workspaces GET: %+v", spec.Paths)
	}
	if len(list.Get.Tags) != 1 || list.Get.Tags[0] != "Workspaces" {
		t.Errorf("inherited tags = %v", list.Get.Tags)
	}

	find := spec.Paths["/api/workspaces/{id}"]
	if find == nil || find.Get == nil {
		t.Fatal("missing /api/workspaces/{id} GET")
	}
	if find.Get.Tags[0] != "Custom" {
		t.Errorf("explicit tags overwritten: %v", find.Get.Tags)
	}
	if find.Delete != nil {
		t.Error("undocumented route should not appear in spec")
	}

	upload := spec.Paths["/api/workspaces/{id}/study-guides"]
	if upload == nil || upload.Post == nil {
		t.Fatal("child group route missing from spec")
	}
}
