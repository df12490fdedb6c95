// Package message models localizable messages: an ordered sequence of
// literal and placeholder parts keyed by a stable id, and bundles that map
// ids to translations.
package message

import (
	"fmt"
	"sort"
	"strings"
)

// Part is one segment of a message: either literal text or a named
// placeholder reference.
type Part interface {
	isPart()
}

// Literal is a run of plain text.
type Literal struct {
	Text string
}

func (Literal) isPart() {}

// PlaceholderRef is a named substitution point, bound at a use site to an
// arbitrary expression.
type PlaceholderRef struct {
	Name string
}

func (PlaceholderRef) isPart() {}

// Message is a localizable text unit.
type Message struct {
	ID          string
	AlternateID string
	Parts       []Part
}

// Placeholders returns the set of distinct placeholder names referenced by
// the message's parts.
func (m *Message) Placeholders() map[string]bool {
	set := make(map[string]bool)
	for _, p := range m.Parts {
		if ref, ok := p.(PlaceholderRef); ok {
			set[ref.Name] = true
		}
	}
	return set
}

// PlaceholderNames returns the placeholder set as a sorted slice, for
// deterministic diagnostics.
func (m *Message) PlaceholderNames() []string {
	set := m.Placeholders()
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SamePlaceholders reports whether two messages reference exactly the same
// placeholder names.
func (m *Message) SamePlaceholders(o *Message) bool {
	a, b := m.Placeholders(), o.Placeholders()
	if len(a) != len(b) {
		return false
	}
	for name := range a {
		if !b[name] {
			return false
		}
	}
	return true
}

// Flatten concatenates the parts ignoring structure. Placeholder references
// render in their {$NAME} source form, so Flatten round-trips with
// ParseText.
func (m *Message) Flatten() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		switch part := p.(type) {
		case Literal:
			sb.WriteString(part.Text)
		case PlaceholderRef:
			sb.WriteString("{$")
			sb.WriteString(part.Name)
			sb.WriteByte('}')
		}
	}
	return sb.String()
}

// ParseText splits message text into parts. Placeholder references are
// written {$NAME}; a "{" not followed by "$" is ordinary text. Names may
// contain letters, digits, "_" and ".".
func ParseText(text string) ([]Part, error) {
	var parts []Part
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Literal{Text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(text); {
		if text[i] == '{' && i+1 < len(text) && text[i+1] == '$' {
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("message: unterminated placeholder at offset %d", i)
			}
			name := text[i+2 : i+end]
			if !validPlaceholderName(name) {
				return nil, fmt.Errorf("message: invalid placeholder name %q", name)
			}
			flush()
			parts = append(parts, PlaceholderRef{Name: name})
			i += end + 1
			continue
		}
		lit.WriteByte(text[i])
		i++
	}
	flush()
	return parts, nil
}

func validPlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
