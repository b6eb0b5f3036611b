package queries

import (
	"etherlink/domain/terminal"
	"etherlink/pkg/utils"
)

// GetInsightsQuery computes the desktop insights snapshot
type GetInsightsQuery struct{}

// Validate validates the query
func (q GetInsightsQuery) Validate() error { return nil }

// CastSpellQuery answers a terminal command
type CastSpellQuery struct {
	Input string `json:"input" validate:"max=200"`
}

// Validate validates the query
func (q CastSpellQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// SpellResult is a terminal exchange
type SpellResult struct {
	Input    string `json:"input"`
	Response string `json:"response"`
}

// GetGrimoirePageQuery reads a grimoire page; Page wraps in both directions
type GetGrimoirePageQuery struct {
	Page int `json:"page"`
}

// Validate validates the query
func (q GetGrimoirePageQuery) Validate() error { return nil }

// GrimoirePageResult is one page with its position
type GrimoirePageResult struct {
	terminal.Page
	Index int `json:"index"`
	Total int `json:"total"`
}
