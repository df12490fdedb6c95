package polyfill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/polyfill"
)

const tableSrc = `# builtin symbol catalog
Map static es2015 es3 es6/map
Array.from static es2015 es3 es6/array/from

Array.prototype.flat method es2019 es5 es6/array/flat
String.prototype.includes method es2015 es3 es6/string/includes
Reflect static es2015 es2015
`

func TestParseTable(t *testing.T) {
	table, err := polyfill.ParseTable(tableSrc)
	require.NoError(t, err)

	m, ok := table.Static("Map")
	require.True(t, ok)
	assert.Equal(t, polyfill.Static, m.Kind)
	assert.Equal(t, "es6/map", m.Library)
	assert.Equal(t, "es2015", m.NativeVersion)
	assert.Equal(t, "es3", m.PolyfillVersion)

	// Library is optional; a guarded-only symbol has none.
	reflect, ok := table.Static("Reflect")
	require.True(t, ok)
	assert.Equal(t, "", reflect.Library)

	flats := table.Methods("flat")
	require.Len(t, flats, 1)
	assert.Equal(t, "Array.prototype.flat", flats[0].Name)

	assert.Empty(t, table.Methods("missing"))
	_, ok = table.Static("WeakRef")
	assert.False(t, ok)

	assert.Equal(t,
		[]string{"es6/array/flat", "es6/array/from", "es6/map", "es6/string/includes"},
		table.Libraries())
}

func TestTableFormatRoundTrips(t *testing.T) {
	table, err := polyfill.ParseTable(tableSrc)
	require.NoError(t, err)

	again, err := polyfill.ParseTable(table.Format())
	require.NoError(t, err)
	assert.Equal(t, table.Format(), again.Format())
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"too few fields", "Map static es2015"},
		{"too many fields", "Map static es2015 es3 es6/map extra"},
		{"bad kind", "Map global es2015 es3 es6/map"},
		{"bad native version", "Map static es99 es3 es6/map"},
		{"bad polyfill version", "Map static es2015 es99 es6/map"},
		{"duplicate entry", "Map static es2015 es3 es6/map\nMap static es2015 es3 es6/map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := polyfill.ParseTable(tt.src)
			assert.Error(t, err)
		})
	}
}
