package message

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Bundle is a read-only id → Message lookup. It outlives a rewriting pass.
type Bundle interface {
	// Get returns the message for id, or false when the bundle has no
	// translation under that id.
	Get(id string) (*Message, bool)
}

// MapBundle is an in-memory Bundle, mainly for tests and programmatic use.
type MapBundle map[string]*Message

func (b MapBundle) Get(id string) (*Message, bool) {
	m, ok := b[id]
	return m, ok
}

// FileBundle is a Bundle loaded from a TOML translation file.
type FileBundle struct {
	Locale   language.Tag
	messages map[string]*Message
}

func (b *FileBundle) Get(id string) (*Message, bool) {
	m, ok := b.messages[id]
	return m, ok
}

// Len returns the number of messages in the bundle.
func (b *FileBundle) Len() int { return len(b.messages) }

// bundleFile mirrors the on-disk TOML layout:
//
//	locale = "fr"
//
//	[[messages]]
//	id = "MSG_HELLO"
//	text = "Bonjour {$NAME}"
type bundleFile struct {
	Locale   string `toml:"locale"`
	Messages []struct {
		ID   string `toml:"id"`
		Text string `toml:"text"`
	} `toml:"messages"`
}

// LoadBundle reads a TOML translation bundle. The locale must be a valid
// BCP 47 tag and message ids must be unique.
func LoadBundle(path string) (*FileBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	return ParseBundle(data)
}

// ParseBundle parses TOML bundle content.
func ParseBundle(data []byte) (*FileBundle, error) {
	var file bundleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	tag, err := language.Parse(file.Locale)
	if err != nil {
		return nil, fmt.Errorf("bundle: bad locale %q: %w", file.Locale, err)
	}
	b := &FileBundle{
		Locale:   tag,
		messages: make(map[string]*Message, len(file.Messages)),
	}
	for _, entry := range file.Messages {
		if entry.ID == "" {
			return nil, fmt.Errorf("bundle: message with empty id")
		}
		if _, dup := b.messages[entry.ID]; dup {
			return nil, fmt.Errorf("bundle: duplicate message id %q", entry.ID)
		}
		parts, err := ParseText(entry.Text)
		if err != nil {
			return nil, fmt.Errorf("bundle: message %q: %w", entry.ID, err)
		}
		b.messages[entry.ID] = &Message{ID: entry.ID, Parts: parts}
	}
	return b, nil
}
