package events

import "etherlink/domain/config"

// Topic identifies the store whose persisted state changed.
// Notifications carry nothing else; observers re-read the store.
type Topic string

const (
	TopicArchive   Topic = "helix-nexus-updated"
	TopicSchedule  Topic = "arcane-scheduler-updated"
	TopicSynthesis Topic = "mana-synth-updated"
)

// Origin tells where a change was made
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginExternal Origin = "external"
)

// StoreTopics lists every store topic in archive, schedule, synthesis order
func StoreTopics() []Topic {
	return []Topic{TopicArchive, TopicSchedule, TopicSynthesis}
}

// TopicForKey maps a persisted key to its topic
func TopicForKey(key string) (Topic, bool) {
	switch key {
	case config.ArchiveKey:
		return TopicArchive, true
	case config.ScheduleKey:
		return TopicSchedule, true
	case config.SynthesisKey:
		return TopicSynthesis, true
	default:
		return "", false
	}
}

// String returns the topic name
func (t Topic) String() string { return string(t) }
