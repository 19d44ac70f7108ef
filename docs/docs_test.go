package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var openapi struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))
	assert.Equal(t, "InvoiceThing API", openapi.Info.Title)
	assert.Contains(t, openapi.Paths, "/api/invoices/{id}/pdf")
	assert.Contains(t, openapi.Paths, "/api/dashboard/stats")
}
