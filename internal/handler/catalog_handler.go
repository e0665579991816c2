package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
)

// CatalogHandler serves the question catalog.
type CatalogHandler struct {
	catalog service.CatalogProvider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogProvider) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListQuestions godoc
// GET /api/v1/questions
// Returns the current catalog snapshot.
func (h *CatalogHandler) ListQuestions(c *gin.Context) {
	catalog, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.CatalogView{
		Questions: catalog,
		Total:     len(catalog),
	})
}
