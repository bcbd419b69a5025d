package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformParameter_QueryParamGetsSchema(t *testing.T) {
	param := map[string]interface{}{
		"name":        "days",
		"in":          "query",
		"description": "Days elapsed",
		"type":        "integer",
		"minimum":     float64(0),
	}

	got := transformParameter(param)

	assert.Equal(t, "days", got["name"])
	assert.Equal(t, "query", got["in"])
	assert.Equal(t, "Days elapsed", got["description"])
	assert.NotContains(t, got, "type")
	assert.Equal(t, map[string]interface{}{"type": "integer", "minimum": float64(0)}, got["schema"])
}

func TestTransformParameter_BodyParamUnchanged(t *testing.T) {
	param := map[string]interface{}{
		"name":   "request",
		"in":     "body",
		"schema": map[string]interface{}{"$ref": "#/definitions/handler.DebtRequest"},
	}

	assert.Equal(t, param, transformParameter(param))
}

func TestTransformRefs_RewritesDefinitions(t *testing.T) {
	doc := map[string]interface{}{
		"responses": map[string]interface{}{
			"200": map[string]interface{}{
				"schema": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"$ref": "#/definitions/handler.BillResponse"},
				},
			},
		},
	}

	got := transformRefs(doc).(map[string]interface{})
	schema := got["responses"].(map[string]interface{})["200"].(map[string]interface{})["schema"].(map[string]interface{})
	items := schema["items"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.BillResponse", items["$ref"])
}

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, apiServers, spec.Servers)
	assert.Contains(t, spec.Paths, "/debts/{id}/schedule")
	assert.Contains(t, spec.Components, "schemas")
	assert.Contains(t, spec.Components, "securitySchemes")

	raw := rec.Body.String()
	assert.NotContains(t, raw, "#/definitions/")
}
