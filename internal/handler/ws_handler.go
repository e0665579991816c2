package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/survey"
	ws "github.com/stemsi/exstem-survey/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams survey interactions over a WebSocket.
type WSHandler struct {
	sessions  *service.SessionService
	submitter Submitter
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessions *service.SessionService, submitter Submitter, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessions:  sessions,
		submitter: submitter,
		log:       log.With().Str("component", "ws_handler").Logger(),
		upgrader:  buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/sessions/:id/stream
// Each client action is answered with one event; the connection closes
// after a successful submit.
func (h *WSHandler) SessionStream(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	// Reject unknown sessions before upgrading so clients get a plain 404.
	view, err := h.sessions.Get(id)
	if err != nil {
		failWith(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", id.String()).Logger()
	wsLog.Info().Msg("Respondent connected")

	if err := ws.WriteTyped(conn, ws.StateResponse{Event: ws.EventState, Session: view}); err != nil {
		return
	}

	for {
		var msg ws.Request
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		done, err := h.dispatch(c, conn, id, msg)
		if err != nil {
			wsLog.Debug().Err(err).Msg("Write failed")
			return
		}
		if done {
			wsLog.Info().Msg("Session submitted over WebSocket")
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "submitted"),
				time.Now().Add(time.Second))
			return
		}
	}
}

// dispatch handles one action and reports whether the session is finished.
func (h *WSHandler) dispatch(c *gin.Context, conn *websocket.Conn, id uuid.UUID, msg ws.Request) (bool, error) {
	var (
		view model.SessionView
		err  error
	)
	switch msg.Action {
	case ws.ActionPing:
		return false, ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
	case ws.ActionAnswer:
		view, err = h.sessions.Apply(id, msg.Event())
	case ws.ActionNext:
		view, err = h.sessions.Next(id)
	case ws.ActionPrevious:
		view, err = h.sessions.Previous(id)
	case ws.ActionSubmit:
		result, err := h.submitter.Submit(c.Request.Context(), id)
		if err != nil {
			return false, h.writeFailure(conn, err)
		}
		return true, ws.WriteTyped(conn, ws.SubmittedResponse{Event: ws.EventSubmitted, Result: *result})
	default:
		return false, ws.WriteError(conn, string(response.ErrInvalidPayload), "unknown action: "+string(msg.Action))
	}

	if err != nil {
		return false, h.writeFailure(conn, err)
	}
	return false, ws.WriteTyped(conn, ws.StateResponse{Event: ws.EventState, Session: view})
}

func (h *WSHandler) writeFailure(conn *websocket.Conn, err error) error {
	var maxErr *survey.MaxSelectionsError
	if errors.As(err, &maxErr) {
		return ws.WriteTyped(conn, ws.MaxExceededResponse{
			Event:      ws.EventMaxExceeded,
			QuestionID: maxErr.QuestionID,
			Max:        maxErr.Max,
			Message:    response.GetMessage(response.ErrMaxSelectionsReached),
		})
	}
	var incomplete *survey.IncompleteError
	if errors.As(err, &incomplete) {
		return ws.WriteTyped(conn, ws.IncompleteResponse{Event: ws.EventIncomplete, Report: incomplete.Report})
	}

	_, code := errorStatus(err)
	if code == response.ErrInternal {
		h.log.Error().Err(err).Msg("WebSocket action failed")
	}
	return ws.WriteError(conn, string(code), response.GetMessage(code))
}
