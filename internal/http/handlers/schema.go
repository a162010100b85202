package handlers

import (
	"net/http"

	"github.com/geocoder89/pravaah/internal/schema"
	"github.com/gin-gonic/gin"
)

type schemaCollection struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Icon        string         `json:"icon,omitempty"`
	Fields      []schema.Field `json:"fields"`
}

// Schema serves the collection registry so a form can render the same
// fields the server validates.
func Schema(ctx *gin.Context) {
	reg := schema.Registry()
	out := make([]schemaCollection, 0, len(reg))

	for _, c := range reg {
		out = append(out, schemaCollection{
			Name:        c.Kind.String(),
			DisplayName: c.DisplayName,
			Icon:        c.Icon,
			Fields:      c.Fields,
		})
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"collections": out})
}
