package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type fixedCounter int

func (n fixedCounter) Len() int { return int(n) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		checker fakeChecker
		status  int
		want    string
	}{
		{"up", fakeChecker{}, http.StatusOK, `"status":"ok"`},
		{"postgres down", fakeChecker{err: errors.New("refused")}, http.StatusServiceUnavailable, `"postgres":"down"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(tt.checker, fixedCounter(0), nil, zerolog.Nop())
			r := gin.New()
			r.GET("/health", h.Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body %s missing %s", w.Body.String(), tt.want)
			}
		})
	}
}
