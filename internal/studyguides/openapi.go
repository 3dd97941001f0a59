package studyguides

import "github.com/JaimeStill/neura/pkg/openapi"

type spec struct {
	Upload *openapi.Operation
	List   *openapi.Operation
	Find   *openapi.Operation
}

var Spec = spec{
	Upload: &openapi.Operation{
		Summary:     "Generate study guide",
		Description: "Upload a PDF, PPTX, DOCX or TXT document and generate a study guide in the workspace",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Workspace ID"),
		},
		RequestBody: openapi.RequestBodyMultipart("file", "Document to process (.pdf, .pptx, .docx, .txt)"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Study guide created", "StudyGuide"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File too large"},
			500: openapi.ResponseRef("InternalError"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List study guides",
		Description: "List the study guides created in a workspace",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Workspace ID"),
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in original filename", false),
			openapi.QueryParam("sort", "string", "Sort fields, prefix with - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Study guide list", "StudyGuidePageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find study guide",
		Description: "Find study guide by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Study guide ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Study guide", "StudyGuide"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ExtractedImage": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"filename":    {Type: "string", Description: "Synthetic filename cited by the study guide"},
				"page_number": {Type: "integer", Description: "Page or slide the image came from"},
				"blob_id":     {Type: "string", Format: "uuid", Description: "Set when the image was stored", Nullable: true},
			},
		},
		"Subsection": {
			Type:     "object",
			Required: []string{"subsection_title", "explanation", "associated_image_filenames"},
			Properties: map[string]*openapi.Property{
				"subsection_title":           {Type: "string"},
				"explanation":                {Type: "string", Description: "Markdown explanation"},
				"associated_image_filenames": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Section": {
			Type:     "object",
			Required: []string{"section_id", "section_title", "section_overview_description", "subsection_titles", "subsections"},
			Properties: map[string]*openapi.Property{
				"section_id":                   {Type: "string", Format: "uuid"},
				"section_title":                {Type: "string"},
				"section_overview_description": {Type: "string"},
				"subsection_titles":            {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"subsections":                  {Type: "array", Items: openapi.SchemaRef("Subsection")},
			},
		},
		"StudyGuide": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":                    {Type: "string", Format: "uuid"},
				"workspace_id":          {Type: "string", Format: "uuid"},
				"original_filename":     {Type: "string"},
				"original_file_blob_id": {Type: "string", Format: "uuid"},
				"extracted_images":      {Type: "array", Items: openapi.SchemaRef("ExtractedImage")},
				"study_guide":           {Type: "array", Items: openapi.SchemaRef("Section")},
				"created_at":            {Type: "string", Format: "date-time"},
			},
		},
		"StudyGuidePageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("StudyGuide")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
