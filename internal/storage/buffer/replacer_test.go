package buffer

import (
	"testing"

	util "github.com/arraydb/bufferpool/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 6 (spec §8): unpin order 1,2,3, then Pin(2) before any Victim
// removes 2 from candidacy, so Victim yields 1, then 3.
func TestReplacer_PinBeforeVictimSkipsFrame(t *testing.T) {
	r := NewLRUReplacer()
	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)
	assert.Equal(t, 3, r.Size())

	r.Pin(2)
	assert.Equal(t, 2, r.Size())

	first, ok := r.Victim()
	require.True(t, ok)
	assert.Equal(t, util.FrameID(1), first)

	second, ok := r.Victim()
	require.True(t, ok)
	assert.Equal(t, util.FrameID(3), second)

	_, ok = r.Victim()
	assert.False(t, ok, "replacer drained")
}

func TestReplacer_UnpinIsIdempotent(t *testing.T) {
	r := NewLRUReplacer()
	r.Unpin(5)
	r.Unpin(5)
	assert.Equal(t, 1, r.Size(), "second Unpin is a no-op")
}

func TestReplacer_PinUntrackedFrameIsNoop(t *testing.T) {
	r := NewLRUReplacer()
	r.Pin(9) // never tracked; must not panic
	assert.Equal(t, 0, r.Size())
}

func TestReplacer_PinThenUnpinReinsertsAtBack(t *testing.T) {
	r := NewLRUReplacer()
	r.Unpin(1)
	r.Unpin(2)

	r.Pin(1)
	r.Unpin(1) // 1 rejoins behind 2, not ahead of it

	first, ok := r.Victim()
	require.True(t, ok)
	assert.Equal(t, util.FrameID(2), first)

	second, ok := r.Victim()
	require.True(t, ok)
	assert.Equal(t, util.FrameID(1), second)
}
