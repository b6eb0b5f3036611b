package commands

import (
	"time"

	"etherlink/pkg/utils"
)

// SavePaletteCommand appends a palette
type SavePaletteCommand struct {
	Colors []string `json:"colors" validate:"max=32,dive,max=64"`
}

// Validate validates the command
func (c SavePaletteCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeletePaletteCommand removes the palette at Index
type DeletePaletteCommand struct {
	Index int `json:"index" validate:"min=0"`
}

// Validate validates the command
func (c DeletePaletteCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SaveNotesCommand overwrites the synthesis notes
type SaveNotesCommand struct {
	Notes string `json:"notes" validate:"max=100000"`
}

// Validate validates the command
func (c SaveNotesCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// NotesResult is the outcome of SaveNotesCommand
type NotesResult struct {
	Notes      string    `json:"notes"`
	LastNoteAt time.Time `json:"lastNoteAt"`
}

// RecordConversionCommand counts one performed conversion
type RecordConversionCommand struct{}

// Validate validates the command
func (c RecordConversionCommand) Validate() error { return nil }

// ConversionCountResult is the outcome of RecordConversionCommand
type ConversionCountResult struct {
	ConversionCount int `json:"conversionCount"`
}
