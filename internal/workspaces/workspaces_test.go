package workspaces_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/workspaces"
	"github.com/JaimeStill/neura/pkg/handlers"
	"github.com/JaimeStill/neura/pkg/pagination"
)

func ptr(s string) *string { return &s }

func TestUpdateCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     workspaces.UpdateCommand
		wantErr error
	}{
		{"empty", workspaces.UpdateCommand{}, workspaces.ErrNoUpdateData},
		{"name only", workspaces.UpdateCommand{Name: ptr("Biology")}, nil},
		{"description only", workspaces.UpdateCommand{Description: ptr("")}, nil},
		{"blank name", workspaces.UpdateCommand{Name: ptr("  ")}, workspaces.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got, err := workspaces.ParseIDs(a.String() + "," + b.String())
	if err != nil {
		t.Fatalf("ParseIDs() error = %v", err)
	}
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("ParseIDs() = %v, want [%s %s]", got, a, b)
	}

	empty, err := workspaces.ParseIDs("")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("ParseIDs(\"\") = %#v, %v, want empty slice", empty, err)
	}

	if _, err := workspaces.ParseIDs("not-a-uuid"); err == nil {
		t.Error("ParseIDs() error = nil for malformed id")
	}
}

func TestBuildUpdate(t *testing.T) {
	id := uuid.New()

	q, args := workspaces.BuildUpdate(id, workspaces.UpdateCommand{Description: ptr("cells")})

	if !strings.Contains(q, "SET description = $1, updated_at = NOW() WHERE w.id = $2") {
		t.Errorf("query = %s", q)
	}
	if strings.Contains(q, "name =") {
		t.Errorf("query updates unset name: %s", q)
	}
	if len(args) != 2 || args[0] != "cells" || args[1] != id {
		t.Errorf("args = %v", args)
	}

	q, args = workspaces.BuildUpdate(id, workspaces.UpdateCommand{Name: ptr("Bio"), Description: ptr("cells")})
	if !strings.Contains(q, "SET name = $1, description = $2, updated_at = NOW() WHERE w.id = $3") {
		t.Errorf("query = %s", q)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestLinkStudyGuideSQL_Idempotent(t *testing.T) {
	q := workspaces.LinkStudyGuideSQL
	for _, fragment := range []string{"array_append(study_guides, $2::uuid)", "NOT ($2::uuid = ANY(study_guides))", "id = $1"} {
		if !strings.Contains(q, fragment) {
			t.Errorf("link statement missing %q", fragment)
		}
	}
}

type fakeSystem struct {
	items      map[uuid.UUID]*workspaces.Workspace
	populated  bool
	lastUpdate workspaces.UpdateCommand
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{items: map[uuid.UUID]*workspaces.Workspace{}}
}

func (f *fakeSystem) add(name string) *workspaces.Workspace {
	ws := &workspaces.Workspace{ID: uuid.New(), Name: name, StudyGuides: []uuid.UUID{}, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.items[ws.ID] = ws
	return ws
}

func (f *fakeSystem) List(_ context.Context, page pagination.PageRequest) (*pagination.PageResult[workspaces.Workspace], error) {
	data := make([]workspaces.Workspace, 0, len(f.items))
	for _, ws := range f.items {
		data = append(data, *ws)
	}
	r := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &r, nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*workspaces.Workspace, error) {
	ws, ok := f.items[id]
	if !ok {
		return nil, workspaces.ErrNotFound
	}
	return ws, nil
}

func (f *fakeSystem) FindPopulated(ctx context.Context, id uuid.UUID) (*workspaces.Populated, error) {
	ws, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	f.populated = true
	return &workspaces.Populated{ID: ws.ID, Name: ws.Name}, nil
}

func (f *fakeSystem) Create(_ context.Context, cmd workspaces.CreateCommand) (*workspaces.Workspace, error) {
	ws := f.add(cmd.Name)
	ws.Description = cmd.Description
	return ws, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd workspaces.UpdateCommand) (*workspaces.Workspace, error) {
	ws, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	f.lastUpdate = cmd
	if cmd.Name != nil {
		ws.Name = *cmd.Name
	}
	if cmd.Description != nil {
		ws.Description = *cmd.Description
	}
	return ws, nil
}

func (f *fakeSystem) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return workspaces.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeSystem) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeSystem) LinkStudyGuide(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func newMux(sys workspaces.System) *http.ServeMux {
	h := workspaces.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	mux := http.NewServeMux()
	for _, r := range h.Routes().Routes {
		mux.HandleFunc(r.Method+" /workspaces"+r.Pattern, r.Handler)
	}
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	sys := newFakeSystem()
	existing := sys.add("Chemistry")
	doomed := sys.add("Physics")
	mux := newMux(sys)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"create", http.MethodPost, "/workspaces", `{"name":"Biology","description":"cells"}`, http.StatusCreated, ""},
		{"create without name", http.MethodPost, "/workspaces", `{"description":"x"}`, http.StatusBadRequest, "name is required"},
		{"create bad json", http.MethodPost, "/workspaces", `{`, http.StatusBadRequest, "invalid request body"},
		{"list", http.MethodGet, "/workspaces", "", http.StatusOK, ""},
		{"find", http.MethodGet, "/workspaces/" + existing.ID.String(), "", http.StatusOK, ""},
		{"find malformed id", http.MethodGet, "/workspaces/abc", "", http.StatusBadRequest, "invalid workspace id"},
		{"find missing", http.MethodGet, "/workspaces/" + uuid.NewString(), "", http.StatusNotFound, "workspace not found"},
		{"update empty", http.MethodPut, "/workspaces/" + existing.ID.String(), `{}`, http.StatusBadRequest, "no update data provided"},
		{"update", http.MethodPut, "/workspaces/" + existing.ID.String(), `{"description":"acids"}`, http.StatusOK, ""},
		{"update missing", http.MethodPut, "/workspaces/" + uuid.NewString(), `{"name":"x"}`, http.StatusNotFound, "workspace not found"},
		{"delete", http.MethodDelete, "/workspaces/" + doomed.ID.String(), "", http.StatusNoContent, ""},
		{"delete again", http.MethodDelete, "/workspaces/" + doomed.ID.String(), "", http.StatusNotFound, "workspace not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, tt.method, tt.path, tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantError != "" {
				var body handlers.ErrorBody
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if body.Error != tt.wantError {
					t.Errorf("error = %q, want %q", body.Error, tt.wantError)
				}
			}
		})
	}

	if sys.items[existing.ID].Name != "Chemistry" || sys.items[existing.ID].Description != "acids" {
		t.Errorf("partial update changed unset fields: %+v", sys.items[existing.ID])
	}
}

func TestHandler_FindPopulated(t *testing.T) {
	sys := newFakeSystem()
	ws := sys.add("History")
	mux := newMux(sys)

	rec := do(mux, http.MethodGet, "/workspaces/"+ws.ID.String()+"?populate=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !sys.populated {
		t.Error("populate=true did not use the populated view")
	}
}
