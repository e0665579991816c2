package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
)

// ResponseHandler serves stored survey responses.
type ResponseHandler struct {
	responses *service.ResponseService
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(responses *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responses: responses}
}

// ListResponses godoc
// GET /api/v1/responses?page=1&limit=10
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, pagination, err := h.responses.List(c.Request.Context(), page, limit)
	if err != nil {
		failWith(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, list, pagination)
}

// GetResponse godoc
// GET /api/v1/responses/:id
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	resp, err := h.responses.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// DeleteResponse godoc
// DELETE /api/v1/responses/:id
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.responses.Delete(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "response deleted"})
}
