// Package terminal holds the spell terminal command table and the grimoire
// pages. Both ship as an embedded YAML document.
package terminal

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed spellbook.yaml
var defaultSpellbook []byte

// Page is one grimoire page
type Page struct {
	Title   string `yaml:"title" json:"title"`
	Rune    string `yaml:"rune" json:"rune"`
	Content string `yaml:"content" json:"content"`
}

// Spellbook answers terminal commands and serves grimoire pages
type Spellbook struct {
	Banner  []string          `yaml:"banner"`
	Unknown string            `yaml:"unknown"`
	Spells  map[string]string `yaml:"spells"`
	Pages   []Page            `yaml:"pages"`
}

// Default parses the embedded spellbook
func Default() (*Spellbook, error) {
	return Parse(defaultSpellbook)
}

// Parse decodes a spellbook document
func Parse(data []byte) (*Spellbook, error) {
	var book Spellbook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parse spellbook: %w", err)
	}
	if len(book.Pages) == 0 {
		return nil, fmt.Errorf("parse spellbook: no grimoire pages")
	}
	if book.Unknown == "" {
		book.Unknown = "Unknown spell: %q"
	}
	return &book, nil
}

// Cast returns the response to a terminal command. Commands are matched
// case-insensitively after trimming; unknown commands quote the raw input.
func (b *Spellbook) Cast(input string) string {
	command := strings.ToLower(strings.TrimSpace(input))
	if response, ok := b.Spells[command]; ok {
		return response
	}
	return fmt.Sprintf(b.Unknown, input)
}

// Names lists the known spells in sorted order
func (b *Spellbook) Names() []string {
	names := make([]string, 0, len(b.Spells))
	for name := range b.Spells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Page returns page n, wrapping in both directions
func (b *Spellbook) Page(n int) Page {
	count := len(b.Pages)
	return b.Pages[((n%count)+count)%count]
}
