package entities

import (
	"strings"
	"time"

	pkgerrors "etherlink/pkg/errors"
)

// Palette is an ordered list of color strings such as "#a855f7"
type Palette []string

// SynthState is the singleton aggregate behind the synthesis tools
type SynthState struct {
	Palettes        []Palette  `json:"palettes"`
	Notes           string     `json:"notes"`
	ConversionCount int        `json:"conversionCount"`
	LastNoteAt      *time.Time `json:"lastNoteAt"`
}

// NewSynthState returns the empty state
func NewSynthState() SynthState {
	return SynthState{Palettes: []Palette{}}
}

// NewPalette trims colors and drops blanks. An empty result is rejected.
func NewPalette(colors []string) (Palette, error) {
	palette := make(Palette, 0, len(colors))
	for _, color := range colors {
		color = strings.TrimSpace(color)
		if color == "" {
			continue
		}
		palette = append(palette, color)
	}
	if len(palette) == 0 {
		return nil, pkgerrors.NewValidationError(pkgerrors.RulePaletteEmpty, "a palette needs at least one color")
	}
	return palette, nil
}

// Clone returns a deep copy so callers cannot alias stored palettes
func (s SynthState) Clone() SynthState {
	out := s
	out.Palettes = make([]Palette, len(s.Palettes))
	for i, p := range s.Palettes {
		out.Palettes[i] = append(Palette(nil), p...)
	}
	if s.LastNoteAt != nil {
		at := *s.LastNoteAt
		out.LastNoteAt = &at
	}
	return out
}
