package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/message"
)

const bundleTOML = `
locale = "fr"

[[messages]]
id = "MSG_HELLO"
text = "Bonjour {$NAME}"

[[messages]]
id = "MSG_BYE"
text = "Au revoir"
`

func TestParseBundle(t *testing.T) {
	b, err := message.ParseBundle([]byte(bundleTOML))
	require.NoError(t, err)

	assert.Equal(t, "fr", b.Locale.String())
	assert.Equal(t, 2, b.Len())

	hello, ok := b.Get("MSG_HELLO")
	require.True(t, ok)
	assert.Equal(t, "Bonjour {$NAME}", hello.Flatten())
	assert.Equal(t, []string{"NAME"}, hello.PlaceholderNames())

	_, ok = b.Get("MSG_MISSING")
	assert.False(t, ok)
}

func TestParseBundleErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "bad locale",
			toml: `locale = "not a locale!!"` + "\n",
		},
		{
			name: "duplicate id",
			toml: `locale = "en"

[[messages]]
id = "MSG_A"
text = "one"

[[messages]]
id = "MSG_A"
text = "two"
`,
		},
		{
			name: "empty id",
			toml: `locale = "en"

[[messages]]
id = ""
text = "x"
`,
		},
		{
			name: "bad placeholder text",
			toml: `locale = "en"

[[messages]]
id = "MSG_A"
text = "broken {$"
`,
		},
		{
			name: "not toml",
			toml: `{"locale": "en"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := message.ParseBundle([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestMapBundle(t *testing.T) {
	m := &message.Message{ID: "MSG_X"}
	b := message.MapBundle{"MSG_X": m}

	got, ok := b.Get("MSG_X")
	assert.True(t, ok)
	assert.Same(t, m, got)

	_, ok = b.Get("MSG_Y")
	assert.False(t, ok)
}
