package blobs

import "github.com/JaimeStill/neura/pkg/openapi"

type spec struct {
	Get *openapi.Operation
}

var Spec = spec{
	Get: &openapi.Operation{
		Summary:     "Download file",
		Description: "Stream a stored original document or extracted image by blob ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("file_id", "Blob ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("File content"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Blob": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":           {Type: "string", Format: "uuid"},
				"filename":     {Type: "string", Description: "Filename at upload"},
				"content_type": {Type: "string", Description: "MIME type"},
				"size_bytes":   {Type: "integer", Format: "int64"},
				"checksum":     {Type: "string", Description: "sha256 of the content, hex encoded"},
				"storage_key":  {Type: "string", Description: "Content-addressed storage key"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
	}
}
