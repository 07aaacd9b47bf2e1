package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := New[int]()

	_, found := reg.Get("missing")
	assert.False(t, found)

	reg.Add("answer", 42)
	v, found := reg.Get("answer")
	require.True(t, found)
	assert.Equal(t, 42, v)

	// GetOrAdd must not recompute for existing keys.
	v, loaded := reg.GetOrAdd("answer", func() int { return 0 })
	assert.True(t, loaded)
	assert.Equal(t, 42, v)

	v, loaded = reg.GetOrAdd("other", func() int { return 7 })
	assert.False(t, loaded)
	assert.Equal(t, 7, v)

	reg.Del("answer")
	_, found = reg.Get("answer")
	assert.False(t, found)
}
