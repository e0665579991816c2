package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CatalogKey returns the cache key for the active question catalog snapshot
func (r *CacheKeyStruct) CatalogKey() string {
	return "survey:catalog"
}

// ResponseStatsKey returns the cache key for the per-question answer counts
func (r *CacheKeyStruct) ResponseStatsKey() string {
	return "survey:responses:stats"
}

// ResponseKey returns the cache key for one stored response's detail
func (r *CacheKeyStruct) ResponseKey(id string) string {
	return fmt.Sprintf("survey:response:%s", id)
}

var CacheKey = NewCacheKeyStruct()
