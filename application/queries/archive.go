package queries

import "etherlink/pkg/utils"

// ListRunesQuery lists runes by tag and free text
type ListRunesQuery struct {
	Tag   string `json:"tag" validate:"max=64"`
	Query string `json:"query" validate:"max=200"`
}

// Validate validates the query
func (q ListRunesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListRuneTagsQuery lists the distinct rune tags
type ListRuneTagsQuery struct{}

// Validate validates the query
func (q ListRuneTagsQuery) Validate() error { return nil }

// ExportRunesQuery renders the archive for download
type ExportRunesQuery struct{}

// Validate validates the query
func (q ExportRunesQuery) Validate() error { return nil }

// ExportResult is an exported archive document
type ExportResult struct {
	Filename string
	Data     []byte
}
