package decode_test

import (
	"testing"

	"github.com/JaimeStill/neura/pkg/decode"
)

type subsection struct {
	Title  string   `json:"subsection_title"`
	Images []string `json:"associated_image_filenames"`
}

func TestInto(t *testing.T) {
	src := map[string]any{
		"subsection_title":           "Cells",
		"associated_image_filenames": []any{"img_page_1_0.png"},
		"extra":                      true,
	}

	got, err := decode.Into[subsection](src)
	if err != nil {
		t.Fatalf("Into() error = %v", err)
	}
	if got.Title != "Cells" || len(got.Images) != 1 || got.Images[0] != "img_page_1_0.png" {
		t.Errorf("Into() = %+v", got)
	}
}

func TestInto_TypeMismatch(t *testing.T) {
	src := map[string]any{"subsection_title": 42}

	if _, err := decode.Into[subsection](src); err == nil {
		t.Error("expected error for numeric title")
	}
}
