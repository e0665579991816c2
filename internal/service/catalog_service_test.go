package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/survey"
)

func TestCatalogServiceMissLoadsAndCaches(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	cache := &memoryCache{}
	s := NewCatalogService(src, cache, 10*time.Minute, zerolog.Nop())

	got, err := s.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if cache.writes != 1 || cache.ttl != 10*time.Minute {
		t.Errorf("cache writes=%d ttl=%v", cache.writes, cache.ttl)
	}

	got, err = s.Catalog(context.Background())
	if err != nil {
		t.Fatalf("second Catalog: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (second read should hit cache)", src.calls)
	}
	q, ok := got.Question("editors")
	if !ok || q.SelectionLimit() != 2 {
		t.Errorf("cached question lost max_selections: %+v", q)
	}
	if c, _ := got[0].Choice("other"); !c.IsOther {
		t.Error("cached choice lost is_other")
	}
}

func TestCatalogServiceCorruptCacheSelfHeals(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	cache := &memoryCache{data: []byte("{not json")}
	s := NewCatalogService(src, cache, time.Minute, zerolog.Nop())

	if _, err := s.Catalog(context.Background()); err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	var cached survey.Catalog
	if err := json.Unmarshal(cache.data, &cached); err != nil || len(cached) != 3 {
		t.Errorf("cache not rewritten: %v %d", err, len(cached))
	}
}

func TestCatalogServiceCacheDown(t *testing.T) {
	src := &fakeSource{catalog: testCatalog()}
	cache := &memoryCache{getErr: errBoom, setErr: errBoom}
	s := NewCatalogService(src, cache, time.Minute, zerolog.Nop())

	got, err := s.Catalog(context.Background())
	if err != nil || len(got) != 3 {
		t.Errorf("Catalog = %d, %v; want database fallback", len(got), err)
	}
}

func TestCatalogServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
		want error
	}{
		{"empty", &fakeSource{}, survey.ErrEmptyCatalog},
		{"database", &fakeSource{err: errBoom}, errBoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &memoryCache{}
			s := NewCatalogService(tt.src, cache, time.Minute, zerolog.Nop())
			if err := s.Prewarm(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if cache.writes != 0 {
				t.Error("failed load must not be cached")
			}
		})
	}
}
