// Package reconcile turns the semi-structured model response into the
// strict study guide schema. The model never emits section identifiers;
// they are generated here before validation.
package reconcile

// Subsection is one explanatory unit within a main section.
type Subsection struct {
	Title          string   `json:"subsection_title"`
	Explanation    string   `json:"explanation"`
	ImageFilenames []string `json:"associated_image_filenames"`
}

// Section is a top-level entry of a study guide.
type Section struct {
	ID               string       `json:"section_id"`
	Title            string       `json:"section_title"`
	Overview         string       `json:"section_overview_description"`
	SubsectionTitles []string     `json:"subsection_titles"`
	Subsections      []Subsection `json:"subsections"`
}
