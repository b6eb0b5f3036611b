package handlers

import (
	"time"

	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/commands/bus"
	"etherlink/application/stores"
)

// Register wires every command handler into b
func Register(b *bus.CommandBus, all *stores.Stores, location *time.Location, logger *zap.Logger) error {
	archive := NewArchiveHandlers(all.Archive, logger)
	schedule := NewScheduleHandlers(all.Schedule, location, logger)
	synthesis := NewSynthesisHandlers(all.Synthesis, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateRuneCommand{}, bus.Typed(archive.CreateRune)},
		{commands.DeleteRuneCommand{}, bus.Typed(archive.DeleteRune)},
		{commands.CreateTaskCommand{}, bus.Typed(schedule.CreateTask)},
		{commands.ToggleTaskCommand{}, bus.Typed(schedule.ToggleTask)},
		{commands.DeleteTaskCommand{}, bus.Typed(schedule.DeleteTask)},
		{commands.SavePaletteCommand{}, bus.Typed(synthesis.SavePalette)},
		{commands.DeletePaletteCommand{}, bus.Typed(synthesis.DeletePalette)},
		{commands.SaveNotesCommand{}, bus.Typed(synthesis.SaveNotes)},
		{commands.RecordConversionCommand{}, bus.Typed(synthesis.RecordConversion)},
	}
	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
