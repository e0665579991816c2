package model

import (
	"github.com/stemsi/exstem-survey/internal/survey"
)

// CatalogFile is the YAML document read by cmd/seed-catalog.
type CatalogFile struct {
	Questions []survey.Question `yaml:"questions"`
}

// CatalogView is the GET /api/v1/questions payload.
type CatalogView struct {
	Questions survey.Catalog `json:"questions"`
	Total     int            `json:"total"`
}
