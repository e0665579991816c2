package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/exstem-survey/internal/repository"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// errorStatus maps domain errors to an HTTP status and API code.
// Unknown errors are internal.
func errorStatus(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, response.ErrSessionNotFound
	case errors.Is(err, service.ErrSessionSubmitted):
		return http.StatusConflict, response.ErrSessionSubmitted
	case errors.Is(err, repository.ErrResponseNotFound):
		return http.StatusNotFound, response.ErrResponseNotFound
	case errors.Is(err, survey.ErrEmptyCatalog):
		return http.StatusServiceUnavailable, response.ErrEmptyCatalog
	case errors.Is(err, survey.ErrInvalidRespondentName):
		return http.StatusBadRequest, response.ErrInvalidRespondent
	case errors.Is(err, survey.ErrUnknownQuestion):
		return http.StatusNotFound, response.ErrUnknownQuestion
	case errors.Is(err, survey.ErrUnknownChoice):
		return http.StatusBadRequest, response.ErrUnknownChoice
	case errors.Is(err, survey.ErrQuestionType):
		return http.StatusBadRequest, response.ErrQuestionType
	case errors.Is(err, survey.ErrChoiceNotSelected):
		return http.StatusConflict, response.ErrChoiceNotSelected
	case errors.Is(err, survey.ErrNoElaboration):
		return http.StatusBadRequest, response.ErrNoElaboration
	case errors.Is(err, survey.ErrUnknownEvent):
		return http.StatusBadRequest, response.ErrInvalidPayload
	case errors.Is(err, survey.ErrMaxSelectionsExceeded):
		return http.StatusConflict, response.ErrMaxSelectionsReached
	case errors.Is(err, survey.ErrIncomplete):
		return http.StatusUnprocessableEntity, response.ErrIncompleteSurvey
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

// failWith writes the envelope for err. Incomplete and over-limit errors
// carry their details as data.
func failWith(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var incomplete *survey.IncompleteError
	if errors.As(err, &incomplete) {
		response.FailWithData(c, status, code, incomplete.Report)
		return
	}
	var maxErr *survey.MaxSelectionsError
	if errors.As(err, &maxErr) {
		response.FailWithData(c, status, code, gin.H{
			"question_id":    maxErr.QuestionID,
			"max_selections": maxErr.Max,
		})
		return
	}

	response.Fail(c, status, code)
}
