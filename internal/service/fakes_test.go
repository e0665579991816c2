package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/exstem-survey/internal/survey"
)

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
			MaxSelections: intPtr(2),
			Choices: []survey.Choice{
				{ID: "vim", Text: "Vim"},
				{ID: "emacs", Text: "Emacs"},
				{ID: "code", Text: "VS Code"},
			},
		},
		{ID: "why", Text: "Why?", Type: survey.QuestionTypeText},
	}
}

type fakeProvider struct {
	catalog survey.Catalog
	err     error
}

func (f fakeProvider) Catalog(context.Context) (survey.Catalog, error) {
	return f.catalog, f.err
}

type fakeSource struct {
	catalog survey.Catalog
	err     error
	calls   int
}

func (f *fakeSource) ListCatalog(context.Context) (survey.Catalog, error) {
	f.calls++
	return f.catalog, f.err
}

type memoryCache struct {
	data   []byte
	ttl    time.Duration
	getErr error
	setErr error
	writes int
}

func (m *memoryCache) Get(context.Context) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, redis.Nil
	}
	return m.data, nil
}

func (m *memoryCache) Set(_ context.Context, data []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data = data
	m.ttl = ttl
	m.writes++
	return nil
}

var errBoom = errors.New("boom")
