package config

// DomainConfig holds the fixed identifiers and defaults of the desktop stores
type DomainConfig struct {
	// Persistence keys, one JSON document each
	ArchiveKey   string
	ScheduleKey  string
	SynthesisKey string

	// Archive defaults
	PlaceholderRuneTitle string
	ExportFilename       string
	ExportIndent         string
}

// Persisted keys. These are shared with every process that opens the same
// data directory, so they must never change.
const (
	ArchiveKey   = "etherlink-helix-runes"
	ScheduleKey  = "etherlink-scheduler-tasks"
	SynthesisKey = "etherlink-mana-synth"
)

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		ArchiveKey:           ArchiveKey,
		ScheduleKey:          ScheduleKey,
		SynthesisKey:         SynthesisKey,
		PlaceholderRuneTitle: "Untitled Rune",
		ExportFilename:       "helix-nexus-runes.json",
		ExportIndent:         "  ",
	}
}

// Keys returns every persisted key in archive, schedule, synthesis order
func (c *DomainConfig) Keys() []string {
	return []string{c.ArchiveKey, c.ScheduleKey, c.SynthesisKey}
}
