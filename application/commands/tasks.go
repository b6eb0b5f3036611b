package commands

import "etherlink/pkg/utils"

// CreateTaskCommand schedules a new task. Start and End accept RFC3339 or
// the zoneless "2006-01-02T15:04" form.
type CreateTaskCommand struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	Start       string `json:"start" validate:"max=64"`
	End         string `json:"end" validate:"max=64"`
}

// Validate validates the command
func (c CreateTaskCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ToggleTaskCommand flips a task between pending and complete
type ToggleTaskCommand struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Validate validates the command
func (c ToggleTaskCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteTaskCommand removes a task. Unknown ids are not an error.
type DeleteTaskCommand struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Validate validates the command
func (c DeleteTaskCommand) Validate() error {
	return utils.ValidateStruct(c)
}
