package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/validator"
)

// Submitter accepts a finished session.
type Submitter interface {
	Submit(ctx context.Context, sessionID uuid.UUID) (*model.SubmitResult, error)
}

// SessionHandler exposes the survey session lifecycle over HTTP.
type SessionHandler struct {
	sessions  *service.SessionService
	submitter Submitter
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.SessionService, submitter Submitter) *SessionHandler {
	return &SessionHandler{sessions: sessions, submitter: submitter}
}

// StartSession godoc
// POST /api/v1/sessions
// Opens a session for the respondent named in the body.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessions.Start(c.Request.Context(), req.UserName)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}

// GetSession godoc
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessions.Get(id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Answer godoc
// PUT /api/v1/sessions/:id/answers/:question_id
// Applies one interaction to a question. A rejected interaction leaves the
// session unchanged.
func (h *SessionHandler) Answer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessions.Apply(id, req.Event(c.Param("question_id")))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Next godoc
// POST /api/v1/sessions/:id/next
func (h *SessionHandler) Next(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessions.Next(id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Previous godoc
// POST /api/v1/sessions/:id/previous
func (h *SessionHandler) Previous(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessions.Previous(id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Submit godoc
// POST /api/v1/sessions/:id/submit
// Responds 422 with the validation report when questions are unanswered.
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.submitter.Submit(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, result)
}

// EndSession godoc
// DELETE /api/v1/sessions/:id
// Discards a session without submitting.
func (h *SessionHandler) EndSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.End(id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "session ended"})
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
