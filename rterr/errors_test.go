package rterr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/rterr"
)

func TestMalformedCategories(t *testing.T) {
	node := struct{ tag string }{"site"}

	structural := rterr.NewStructuralf(node, "Message parts has an unrecognized node type: %s", "CALL")
	assert.Equal(t, rterr.TypeStructural, structural.Type())
	assert.Equal(t, "[StructuralError] Message parts has an unrecognized node type: CALL", structural.Error())
	assert.Equal(t, node, structural.Node)

	consistency := rterr.NewConsistency(node, "Duplicate placeholder name: count")
	assert.Equal(t, rterr.TypeConsistency, consistency.Type())
	assert.Contains(t, consistency.Error(), "ConsistencyError")
}

func TestMalformedUnwrapsThroughWrapping(t *testing.T) {
	inner := rterr.NewStructural(nil, "Expected STRING or ADD node")
	wrapped := fmt.Errorf("replacing message MSG_GREETING: %w", inner)

	var malformed *rterr.Malformed
	require.True(t, errors.As(wrapped, &malformed))
	assert.Equal(t, "Expected STRING or ADD node", malformed.Msg)
}

func TestMultiError(t *testing.T) {
	m := &rterr.MultiError{Errors: []error{
		rterr.NewConsistency(nil, "first"),
		rterr.NewStructural(nil, "second"),
	}}
	assert.Equal(t, rterr.TypeConsistency, m.Type())
	assert.Contains(t, m.Error(), "2 error(s) occurred")
	assert.Contains(t, m.Error(), "first")
	assert.Contains(t, m.Error(), "second")
}
