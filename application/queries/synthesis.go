package queries

import "etherlink/pkg/utils"

// GetSynthQuery returns the synthesis state
type GetSynthQuery struct{}

// Validate validates the query
func (q GetSynthQuery) Validate() error { return nil }

// ConvertQuery converts a value between units
type ConvertQuery struct {
	Value float64 `json:"value"`
	From  string  `json:"from" validate:"required,max=8"`
	To    string  `json:"to" validate:"required,max=8"`
}

// Validate validates the query
func (q ConvertQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ConversionResult is a converted value
type ConversionResult struct {
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

// ListUnitsQuery lists every source unit with its conversion targets
type ListUnitsQuery struct{}

// Validate validates the query
func (q ListUnitsQuery) Validate() error { return nil }
