package commands

import "etherlink/pkg/utils"

// CreateRuneCommand archives a new rune
type CreateRuneCommand struct {
	Title   string   `json:"title" validate:"max=200"`
	Content string   `json:"content" validate:"max=50000"`
	Tags    []string `json:"tags" validate:"max=32,dive,max=64"`
}

// Validate validates the command
func (c CreateRuneCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteRuneCommand removes a rune. Unknown ids are not an error.
type DeleteRuneCommand struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Validate validates the command
func (c DeleteRuneCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteResult reports whether a delete removed anything
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
