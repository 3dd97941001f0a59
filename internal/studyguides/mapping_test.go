package studyguides_test

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/reconcile"
	"github.com/JaimeStill/neura/pkg/repository"
)

func TestJSONColumns_RoundTrip(t *testing.T) {
	blobID := uuid.New()

	images := []extract.Image{
		{Filename: "img_1_0.png", PageNumber: 1, BlobID: &blobID},
		{Filename: "img_2_1.jpeg", PageNumber: 2},
	}
	sections := []reconcile.Section{
		{
			ID:               uuid.NewString(),
			Title:            "Cell structure",
			Overview:         "Organelles and their roles",
			SubsectionTitles: []string{"Nucleus", "Mitochondria"},
			Subsections: []reconcile.Subsection{
				{Title: "Nucleus", Explanation: "Holds the genome", ImageFilenames: []string{"img_1_0.png"}},
				{Title: "Mitochondria", Explanation: "Produce ATP", ImageFilenames: []string{}},
			},
		},
	}

	t.Run("extracted images", func(t *testing.T) {
		encoded, err := repository.MarshalJSON(images)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}

		var got []extract.Image
		if err := (repository.JSON[[]extract.Image]{V: &got}).Scan([]byte(encoded)); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}

		if !reflect.DeepEqual(got, images) {
			t.Errorf("round trip = %+v, want %+v", got, images)
		}
		if got[1].BlobID != nil {
			t.Error("image without a blob id gained one")
		}
	})

	t.Run("sections", func(t *testing.T) {
		encoded, err := repository.MarshalJSON(sections)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}

		var got []reconcile.Section
		if err := (repository.JSON[[]reconcile.Section]{V: &got}).Scan(encoded); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}

		if !reflect.DeepEqual(got, sections) {
			t.Errorf("round trip = %+v, want %+v", got, sections)
		}
	})
}
