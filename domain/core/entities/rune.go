package entities

import (
	"strings"
	"time"

	"etherlink/domain/core/valueobjects"
	pkgerrors "etherlink/pkg/errors"
)

// DefaultRuneTitle replaces an empty title when only content was given
const DefaultRuneTitle = "Untitled Rune"

// Rune is an archived note. Runes are immutable once created.
type Rune struct {
	ID        valueobjects.EntryID `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Tags      valueobjects.Tags    `json:"tags"`
	CreatedAt time.Time            `json:"createdAt"`
}

// RuneInput is the user supplied part of a rune
type RuneInput struct {
	Title   string
	Content string
	Tags    []string
}

// NewRune validates input and creates a rune stamped with now.
// placeholder is used as the title when the title is blank.
func NewRune(input RuneInput, placeholder string, now time.Time) (Rune, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)

	if title == "" && content == "" {
		return Rune{}, pkgerrors.NewValidationError(pkgerrors.RuleRuneEmpty, "a rune needs a title or content")
	}
	if title == "" {
		title = placeholder
		if title == "" {
			title = DefaultRuneTitle
		}
	}

	return Rune{
		ID:        valueobjects.NewEntryID(),
		Title:     title,
		Content:   content,
		Tags:      valueobjects.NewTags(input.Tags),
		CreatedAt: now,
	}, nil
}

// Matches reports whether the rune contains query (already lowercased) in
// its title or content
func (r Rune) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Content), query)
}

// Clone returns a copy that shares no slices with r
func (r Rune) Clone() Rune {
	r.Tags = append(valueobjects.Tags{}, r.Tags...)
	return r
}
