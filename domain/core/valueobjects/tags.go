package valueobjects

import "strings"

// Tags is an ordered list of lowercase rune tags.
// Duplicates are kept; order is the order the user typed them in.
type Tags []string

// NewTags normalises raw tags: trims, drops blanks and lowercases
func NewTags(raw []string) Tags {
	tags := make(Tags, 0, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ParseTags splits the comma separated form used by input forms
func ParseTags(raw string) Tags {
	return NewTags(strings.Split(raw, ","))
}

// Contains reports whether tag is present, compared exactly
func (t Tags) Contains(tag string) bool {
	for _, candidate := range t {
		if candidate == tag {
			return true
		}
	}
	return false
}
