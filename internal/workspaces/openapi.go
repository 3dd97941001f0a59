package workspaces

import "github.com/JaimeStill/neura/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List workspaces",
		Description: "List workspaces with pagination",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in name", false),
			openapi.QueryParam("sort", "string", "Sort fields, prefix with - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Workspace list", "WorkspacePageResult"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create workspace",
		RequestBody: openapi.RequestBodyJSON("CreateWorkspaceCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Workspace created", "Workspace"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find workspace",
		Description: "Find workspace by ID. With populate=true the study guides are returned in full instead of by ID.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Workspace ID"),
			openapi.QueryParam("populate", "boolean", "Inline study guides", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Workspace details", "Workspace"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update workspace",
		Description: "Update the name and/or description; omitted fields are unchanged",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Workspace ID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateWorkspaceCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Workspace updated", "Workspace"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete workspace",
		Description: "Delete a workspace. Its study guides remain retrievable by ID.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Workspace ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Workspace deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Workspace": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"study_guides": {Type: "array", Description: "Study guide IDs, or full study guides when populated", Items: &openapi.Schema{Type: "string", Format: "uuid"}},
				"created_at":   {Type: "string", Format: "date-time"},
				"updated_at":   {Type: "string", Format: "date-time"},
			},
		},
		"CreateWorkspaceCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Property{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"UpdateWorkspaceCommand": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"WorkspacePageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("Workspace")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
