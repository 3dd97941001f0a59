package studyguides_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/blobs"
	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/model"
	"github.com/JaimeStill/neura/internal/prompt"
	"github.com/JaimeStill/neura/internal/reconcile"
	"github.com/JaimeStill/neura/internal/studyguides"
	"github.com/JaimeStill/neura/pkg/failure"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeModel struct {
	response string
	prompts  []*prompt.Request
}

func (f *fakeModel) Configured() bool { return true }

func (f *fakeModel) Generate(_ context.Context, req *prompt.Request) (string, error) {
	f.prompts = append(f.prompts, req)
	return f.response, nil
}

type fakeLinker struct {
	exists bool
	linked []uuid.UUID
}

func (f *fakeLinker) Exists(context.Context, uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *fakeLinker) LinkStudyGuide(_ context.Context, _, guideID uuid.UUID) error {
	if !contains(f.linked, guideID) {
		f.linked = append(f.linked, guideID)
	}
	return nil
}

type fakeBlobs struct {
	mu      sync.Mutex
	created []blobs.CreateCommand
	fail    map[string]bool
}

func (f *fakeBlobs) Create(_ context.Context, cmd blobs.CreateCommand) (*blobs.Blob, error) {
	if _, err := os.Stat(cmd.Path); err != nil {
		return nil, err
	}
	if f.fail[cmd.Filename] {
		return nil, errors.New("storage write failed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, cmd)
	return &blobs.Blob{ID: uuid.New(), Filename: cmd.Filename, ContentType: cmd.ContentType}, nil
}

type fakeStore struct {
	guides map[uuid.UUID]*studyguides.StudyGuide
}

func (f *fakeStore) Create(_ context.Context, cmd studyguides.CreateCommand) (*studyguides.StudyGuide, error) {
	g := &studyguides.StudyGuide{
		ID:                 uuid.New(),
		WorkspaceID:        cmd.WorkspaceID,
		OriginalFilename:   cmd.OriginalFilename,
		OriginalFileBlobID: cmd.OriginalFileBlobID,
		ExtractedImages:    cmd.ExtractedImages,
		Sections:           cmd.Sections,
		CreatedAt:          time.Now(),
	}
	f.guides[g.ID] = g
	return g, nil
}

func (f *fakeStore) Find(_ context.Context, id uuid.UUID) (*studyguides.StudyGuide, error) {
	g, ok := f.guides[id]
	if !ok {
		return nil, studyguides.ErrNotFound
	}
	return g, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type harness struct {
	pipeline *studyguides.Pipeline
	tempDir  string
	model    *fakeModel
	linker   *fakeLinker
	blobs    *fakeBlobs
	store    *fakeStore
}

func newHarness(t *testing.T, client model.Client, exists bool) *harness {
	t.Helper()

	h := &harness{
		tempDir: t.TempDir(),
		linker:  &fakeLinker{exists: exists},
		blobs:   &fakeBlobs{fail: map[string]bool{}},
		store:   &fakeStore{guides: map[uuid.UUID]*studyguides.StudyGuide{}},
	}
	if fm, ok := client.(*fakeModel); ok {
		h.model = fm
	}

	cfg := &config.PipelineConfig{
		TempDir:           h.tempDir,
		MaxTextChars:      30000,
		MinImageWidth:     50,
		MinImageHeight:    50,
		UploadConcurrency: 2,
	}

	h.pipeline = studyguides.NewPipeline(studyguides.Dependencies{
		Guides:     h.store,
		Blobs:      h.blobs,
		Workspaces: h.linker,
		Reconciler: reconcile.New(client, time.Second, testLogger()),
	}, cfg, testLogger())

	return h
}

func (h *harness) assertCleanedUp(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(h.tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d leftover entries", len(entries))
	}
}

const sectionJSON = `{"section_title":"A","section_overview_description":"d","subsection_titles":["s"],"subsections":[{"subsection_title":"s","explanation":"e","associated_image_filenames":%s}]}`

func modelResponse(images string) string {
	return "```json\n[" + fmt.Sprintf(sectionJSON, images) + "]\n```"
}

func TestPipeline_RejectedBeforeWork(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		exists   bool
		wantErr  error
		wantKind failure.Kind
	}{
		{"unsupported extension", "notes.md", true, extract.ErrUnsupportedType, failure.InvalidInput},
		{"missing filename", "", true, studyguides.ErrMissingFilename, failure.InvalidInput},
		{"unknown workspace", "notes.txt", false, studyguides.ErrWorkspaceNotFound, failure.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeModel{response: modelResponse("[]")}, tt.exists)

			_, err := h.pipeline.Process(context.Background(), studyguides.Upload{
				WorkspaceID: uuid.New(),
				Filename:    tt.filename,
				Content:     strings.NewReader("content"),
			})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Process() error = %v, want %v", err, tt.wantErr)
			}
			if kind := failure.KindOf(err); kind != tt.wantKind {
				t.Errorf("KindOf() = %s, want %s", kind, tt.wantKind)
			}
			if len(h.model.prompts) != 0 {
				t.Error("model was called")
			}
			h.assertCleanedUp(t)
		})
	}
}

func TestPipeline_EmptyText(t *testing.T) {
	h := newHarness(t, &fakeModel{response: modelResponse("[]")}, true)

	_, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: uuid.New(),
		Filename:    "blank.txt",
		Content:     strings.NewReader("  \n\t "),
	})

	if !errors.Is(err, studyguides.ErrEmptyDocument) {
		t.Fatalf("Process() error = %v, want ErrEmptyDocument", err)
	}
	if failure.Status(err) != 400 {
		t.Errorf("Status() = %d, want 400", failure.Status(err))
	}
	h.assertCleanedUp(t)
}

func TestPipeline_ModelUnavailable(t *testing.T) {
	h := newHarness(t, model.Unconfigured(), true)

	_, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: uuid.New(),
		Filename:    "notes.txt",
		Content:     strings.NewReader("photosynthesis converts light to energy"),
	})

	if kind := failure.KindOf(err); kind != failure.ModelUnavailable {
		t.Fatalf("KindOf() = %s, want %s (err = %v)", kind, failure.ModelUnavailable, err)
	}
	if len(h.blobs.created) != 0 {
		t.Errorf("%d blobs stored, want 0", len(h.blobs.created))
	}
	h.assertCleanedUp(t)
}

func TestPipeline_TXT(t *testing.T) {
	fm := &fakeModel{response: modelResponse("[]") + " trailing"}
	h := newHarness(t, fm, true)
	workspaceID := uuid.New()

	guide, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: workspaceID,
		Filename:    "Notes.TXT",
		Content:     strings.NewReader("photosynthesis converts light to energy"),
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if guide.WorkspaceID != workspaceID {
		t.Errorf("WorkspaceID = %s, want %s", guide.WorkspaceID, workspaceID)
	}
	if guide.OriginalFilename != "Notes.TXT" {
		t.Errorf("OriginalFilename = %q", guide.OriginalFilename)
	}
	if guide.OriginalFileBlobID == uuid.Nil {
		t.Error("original blob id not recorded")
	}
	if len(guide.Sections) != 1 || guide.Sections[0].ID == "" {
		t.Errorf("Sections = %+v", guide.Sections)
	}

	if len(h.blobs.created) != 1 {
		t.Fatalf("%d blobs stored, want 1", len(h.blobs.created))
	}
	if ct := h.blobs.created[0].ContentType; ct != extract.FormatTXT.ContentType() {
		t.Errorf("original content type = %q", ct)
	}

	if len(h.linker.linked) != 1 || h.linker.linked[0] != guide.ID {
		t.Errorf("linked = %v, want [%s]", h.linker.linked, guide.ID)
	}

	if !strings.Contains(fm.prompts[0].Text, "photosynthesis converts light to energy") {
		t.Error("prompt missing document text")
	}

	h.assertCleanedUp(t)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// pptxBytes builds a one-slide deck with three pictures. second is the
// content of the middle picture.
func pptxBytes(t *testing.T, second []byte) []byte {
	t.Helper()

	parts := map[string][]byte{
		"ppt/presentation.xml": []byte(`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:sldIdLst><p:sldId id="256" r:id="rId1"/></p:sldIdLst></p:presentation>`),
		"ppt/_rels/presentation.xml.rels": []byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/></Relationships>`),
		"ppt/slides/slide1.xml": []byte(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:cSld><p:spTree>` +
			`<p:sp><p:txBody><a:p><a:r><a:t>Cell structure</a:t></a:r></a:p></p:txBody></p:sp>` +
			`<p:pic><p:blipFill><a:blip r:embed="rId1"/></p:blipFill></p:pic>` +
			`<p:pic><p:blipFill><a:blip r:embed="rId2"/></p:blipFill></p:pic>` +
			`<p:pic><p:blipFill><a:blip r:embed="rId3"/></p:blipFill></p:pic>` +
			`</p:spTree></p:cSld></p:sld>`),
		"ppt/slides/_rels/slide1.xml.rels": []byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>` +
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image2.png"/>` +
			`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image3.png"/>` +
			`</Relationships>`),
		"ppt/media/image1.png": pngBytes(t, 100, 100),
		"ppt/media/image2.png": second,
		"ppt/media/image3.png": pngBytes(t, 20, 20),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPipeline_PPTXImages(t *testing.T) {
	fm := &fakeModel{response: modelResponse(`["img_slide_1_0.png","img_slide_1_2.png","made_up.png"]`)}
	h := newHarness(t, fm, true)
	h.blobs.fail["img_slide_1_1.png"] = true

	guide, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: uuid.New(),
		Filename:    "cells.pptx",
		Content:     bytes.NewReader(pptxBytes(t, pngBytes(t, 80, 60))),
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := fm.prompts[0].Filenames; len(got) != 2 || got[0] != "img_slide_1_0.png" || got[1] != "img_slide_1_1.png" {
		t.Errorf("prompt filenames = %v", got)
	}

	images := guide.ExtractedImages
	if len(images) != 3 {
		t.Fatalf("len(ExtractedImages) = %d, want 3", len(images))
	}

	tests := []struct {
		filename string
		wantBlob bool
	}{
		{"img_slide_1_0.png", true},
		{"img_slide_1_1.png", false},
		{"img_slide_1_2.png", false},
	}
	for i, tt := range tests {
		if images[i].Filename != tt.filename {
			t.Errorf("images[%d].Filename = %q, want %q", i, images[i].Filename, tt.filename)
		}
		if (images[i].BlobID != nil) != tt.wantBlob {
			t.Errorf("images[%d] blob attached = %v, want %v", i, images[i].BlobID != nil, tt.wantBlob)
		}
	}

	refs := guide.Sections[0].Subsections[0].ImageFilenames
	if len(refs) != 1 || refs[0] != "img_slide_1_0.png" {
		t.Errorf("associated images = %v, want [img_slide_1_0.png]", refs)
	}

	if len(h.blobs.created) != 2 {
		t.Errorf("%d blobs stored, want 2", len(h.blobs.created))
	}

	h.assertCleanedUp(t)
}

func TestPipeline_UnloadableImageNotStored(t *testing.T) {
	// A truncated PNG keeps a valid header, so it passes the size filter
	// but cannot be decoded for the prompt.
	truncated := pngBytes(t, 80, 60)[:33]

	fm := &fakeModel{response: modelResponse(`["img_slide_1_0.png","img_slide_1_1.png"]`)}
	h := newHarness(t, fm, true)

	guide, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: uuid.New(),
		Filename:    "cells.pptx",
		Content:     bytes.NewReader(pptxBytes(t, truncated)),
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := fm.prompts[0].Filenames; len(got) != 1 || got[0] != "img_slide_1_0.png" {
		t.Fatalf("prompt filenames = %v, want [img_slide_1_0.png]", got)
	}

	for _, img := range guide.ExtractedImages {
		if img.Filename == "img_slide_1_1.png" && img.BlobID != nil {
			t.Error("image the model never saw was stored")
		}
	}

	for _, cmd := range h.blobs.created {
		if cmd.Filename == "img_slide_1_1.png" {
			t.Error("image the model never saw was uploaded")
		}
	}
	if len(h.blobs.created) != 2 {
		t.Errorf("%d blobs stored, want 2", len(h.blobs.created))
	}

	refs := guide.Sections[0].Subsections[0].ImageFilenames
	if len(refs) != 1 || refs[0] != "img_slide_1_0.png" {
		t.Errorf("associated images = %v, want [img_slide_1_0.png]", refs)
	}

	h.assertCleanedUp(t)
}

func TestPipeline_OriginalUploadFailure(t *testing.T) {
	h := newHarness(t, &fakeModel{response: modelResponse("[]")}, true)
	h.blobs.fail["notes.txt"] = true

	_, err := h.pipeline.Process(context.Background(), studyguides.Upload{
		WorkspaceID: uuid.New(),
		Filename:    "notes.txt",
		Content:     strings.NewReader("some text"),
	})
	if err == nil {
		t.Fatal("Process() error = nil, want upload failure")
	}
	if len(h.store.guides) != 0 {
		t.Error("study guide inserted after original upload failed")
	}
	if len(h.linker.linked) != 0 {
		t.Error("workspace linked after original upload failed")
	}
	h.assertCleanedUp(t)
}
