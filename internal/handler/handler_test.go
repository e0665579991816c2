package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/survey"
	"github.com/stemsi/exstem-survey/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func intPtr(n int) *int { return &n }

func testCatalog() survey.Catalog {
	return survey.Catalog{
		{
			ID:   "lang",
			Text: "Favourite language?",
			Type: survey.QuestionTypeSingle,
			Choices: []survey.Choice{
				{ID: "go", Text: "Go"},
				{ID: "other", Text: "Other", IsOther: true},
			},
		},
		{
			ID:            "editors",
			Text:          "Editors you use?",
			Type:          survey.QuestionTypeMulti,
			MaxSelections: intPtr(1),
			Choices: []survey.Choice{
				{ID: "vim", Text: "Vim"},
				{ID: "emacs", Text: "Emacs"},
			},
		},
	}
}

type fakeProvider struct {
	catalog survey.Catalog
	err     error
}

func (f fakeProvider) Catalog(context.Context) (survey.Catalog, error) { return f.catalog, f.err }

// fakeSubmitter closes the session without touching Redis.
type fakeSubmitter struct {
	sessions *service.SessionService
}

func (f fakeSubmitter) Submit(_ context.Context, id uuid.UUID) (*model.SubmitResult, error) {
	sub, report, err := f.sessions.Submit(id, func(survey.Submission) error { return nil })
	if err != nil {
		return nil, err
	}
	return &model.SubmitResult{ResponseID: uuid.New(), Submission: sub, Report: report}, nil
}

type fakeChecker struct {
	err error
}

func (f fakeChecker) Check(context.Context) (map[string]string, error) {
	if f.err != nil {
		return map[string]string{"postgres": "down", "redis": "ok"}, f.err
	}
	return map[string]string{"postgres": "ok", "redis": "ok"}, nil
}

type testServer struct {
	engine   *gin.Engine
	sessions *service.SessionService
}

func newTestServer(t *testing.T, provider fakeProvider) *testServer {
	t.Helper()
	sessions := service.NewSessionService(provider, survey.OrderInsertion, time.Hour, zerolog.Nop())
	submitter := fakeSubmitter{sessions: sessions}
	sh := NewSessionHandler(sessions, submitter)
	ch := NewCatalogHandler(provider)
	wh := NewWSHandler(sessions, submitter, zerolog.Nop(), nil)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/api/v1/questions", ch.ListQuestions)
	r.POST("/api/v1/sessions", sh.StartSession)
	r.GET("/api/v1/sessions/:id", sh.GetSession)
	r.DELETE("/api/v1/sessions/:id", sh.EndSession)
	r.PUT("/api/v1/sessions/:id/answers/:question_id", sh.Answer)
	r.POST("/api/v1/sessions/:id/next", sh.Next)
	r.POST("/api/v1/sessions/:id/previous", sh.Previous)
	r.POST("/api/v1/sessions/:id/submit", sh.Submit)
	r.GET("/ws/v1/sessions/:id/stream", wh.SessionStream)
	return &testServer{engine: r, sessions: sessions}
}

type envelope struct {
	Data     json.RawMessage     `json:"data"`
	Error    *response.ErrorBody `json:"error"`
	Metadata response.Metadata   `json:"metadata"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func (s *testServer) start(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/sessions", gin.H{"user_name": "Ada Lovelace"})
	if code != http.StatusCreated {
		t.Fatalf("start: status %d, error %+v", code, env.Error)
	}
	var view model.SessionView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatal(err)
	}
	return view.ID
}
