package polyfill

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Kind distinguishes polyfills for static symbols (`Map`, `Array.from`)
// from prototype-method polyfills (`Array.prototype.includes`), which are
// detected by property name rather than by qualified name.
type Kind uint8

const (
	Static Kind = iota
	Method
)

func (k Kind) String() string {
	if k == Method {
		return "method"
	}
	return "static"
}

func kindOf(token string) (Kind, error) {
	switch token {
	case "static":
		return Static, nil
	case "method":
		return Method, nil
	default:
		return Static, fmt.Errorf("polyfill: unknown kind %q", token)
	}
}

// Polyfill describes one cataloged builtin symbol: the library that backs
// it (empty when the symbol is only guarded, never injected), the language
// version that introduced the symbol natively, and the version the polyfill
// implementation itself requires.
type Polyfill struct {
	Name            string
	Kind            Kind
	Library         string
	NativeVersion   string
	PolyfillVersion string

	// native and required are the parsed versions, filled by ParseTable.
	native   FeatureSet
	required FeatureSet
}

// Table is the polyfill catalog, loaded from a static text resource.
type Table struct {
	statics map[string]*Polyfill
	methods map[string][]*Polyfill
	entries []*Polyfill
}

// ParseTable reads the catalog text: one entry per line, whitespace
// separated as `name kind nativeVersion polyfillVersion [library]`, with
// blank lines and #-comments skipped. Library is omitted for symbols that
// have no backing implementation.
func ParseTable(src string) (*Table, error) {
	t := &Table{
		statics: make(map[string]*Polyfill),
		methods: make(map[string][]*Polyfill),
	}
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 && len(fields) != 5 {
			return nil, fmt.Errorf("polyfill: line %d: want 4 or 5 fields, got %d", lineNo+1, len(fields))
		}
		kind, err := kindOf(fields[1])
		if err != nil {
			return nil, fmt.Errorf("polyfill: line %d: %w", lineNo+1, err)
		}
		native, err := FeatureSetOf(fields[2])
		if err != nil {
			return nil, fmt.Errorf("polyfill: line %d: %w", lineNo+1, err)
		}
		required, err := FeatureSetOf(fields[3])
		if err != nil {
			return nil, fmt.Errorf("polyfill: line %d: %w", lineNo+1, err)
		}
		p := &Polyfill{
			Name:            fields[0],
			Kind:            kind,
			NativeVersion:   fields[2],
			PolyfillVersion: fields[3],
			native:          native,
			required:        required,
		}
		if len(fields) == 5 {
			p.Library = fields[4]
		}
		if _, dup := t.statics[p.Name]; dup {
			return nil, fmt.Errorf("polyfill: line %d: duplicate entry %q", lineNo+1, p.Name)
		}
		t.statics[p.Name] = p
		t.entries = append(t.entries, p)
		if p.Kind == Method {
			prop := p.Name[strings.LastIndexByte(p.Name, '.')+1:]
			t.methods[prop] = append(t.methods[prop], p)
		}
	}
	return t, nil
}

// LoadTable reads the catalog from a file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("polyfill: %w", err)
	}
	return ParseTable(string(data))
}

// Format renders the table back to its text form, entries in input order.
// Format output round-trips through ParseTable.
func (t *Table) Format() string {
	var sb strings.Builder
	for _, p := range t.entries {
		sb.WriteString(p.Name)
		sb.WriteByte(' ')
		sb.WriteString(p.Kind.String())
		sb.WriteByte(' ')
		sb.WriteString(p.NativeVersion)
		sb.WriteByte(' ')
		sb.WriteString(p.PolyfillVersion)
		if p.Library != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Library)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Static returns the polyfill registered under a full symbol name.
func (t *Table) Static(name string) (*Polyfill, bool) {
	p, ok := t.statics[name]
	return p, ok
}

// Methods returns every prototype-method polyfill matching a property name.
func (t *Table) Methods(prop string) []*Polyfill {
	return t.methods[prop]
}

// Libraries returns the distinct backing library names, sorted.
func (t *Table) Libraries() []string {
	set := make(map[string]bool)
	for _, p := range t.entries {
		if p.Library != "" {
			set[p.Library] = true
		}
	}
	libs := make([]string, 0, len(set))
	for lib := range set {
		libs = append(libs, lib)
	}
	sort.Strings(libs)
	return libs
}
