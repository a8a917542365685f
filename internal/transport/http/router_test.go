package http_test

import (
	"net/http"
	"testing"

	transport "github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/transport/http"
	"github.com/stretchr/testify/assert"
)

func TestRouterServesDocsAndUI(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := doJSON(h, http.MethodGet, "/swagger.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "basePath: /api")

	rec = doJSON(h, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/swagger.yaml")

	rec = doJSON(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `const API_URL = "/api/products";`)
}

func TestRouterUnknownRoutes(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := doJSON(h, http.MethodGet, "/api/widgets", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, transport.MessageNotFound, decodeMessage(t, rec))

	rec = doJSON(h, http.MethodPatch, "/api/products/"+unknownID, `{"price":2}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
