package l3merge

import (
	"testing"

	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarise(t *testing.T) {
	t.Parallel()

	rc := rawBlock(10, 20, 4, 3, 7)
	rc[5] = append(rc[5], block(14, 20, 2))

	stats := Summarise([]l2graph.RawContact{rc})
	require.Len(t, stats, 1)
	s := stats[0]

	assert.Equal(t, 6, s.Width, "second blob widens frame 5")
	assert.Equal(t, 4, s.Height)
	assert.Equal(t, 24.0, s.Surface)
	assert.Equal(t, 5, s.Length)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, s.Frames)
	assert.Equal(t, orb.Point{13, 22}, s.Center)
	assert.Equal(t, orb.Point{12, 22}, s.CenterAt(4))
	assert.Equal(t, s.Center, s.CenterAt(40), "absent frame falls back to the overall centre")
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(8))
}

func TestDeriveThresholds(t *testing.T) {
	t.Parallel()

	stats := Summarise([]l2graph.RawContact{
		rawBlock(0, 0, 4, 0, 9),   // 4×4, 10 frames
		rawBlock(20, 0, 8, 0, 3),  // 8×8, 4 frames
		rawBlock(40, 0, 1, 0, 3),  // single pixel, sides excluded
		rawBlock(60, 0, 2, 10, 11), // 2×2, sides excluded
	})
	th := DeriveThresholds(stats, DefaultParams())

	assert.InDelta(t, 20.0/4*0.5, th.Frame, 1e-9)
	assert.InDelta(t, 6*1.25, th.Distance, 1e-9)
	assert.InDelta(t, (16.0+64+1+4)/4*0.25, th.Surface, 1e-9)
}

func TestDeriveThresholds_TinyContacts(t *testing.T) {
	t.Parallel()

	stats := Summarise([]l2graph.RawContact{
		rawBlock(0, 0, 1, 0, 1),
		rawBlock(5, 0, 2, 0, 1),
	})
	th := DeriveThresholds(stats, DefaultParams())
	assert.InDelta(t, 1.5*1.25, th.Distance, 1e-9, "falls back to every side")
	assert.Equal(t, Thresholds{}, DeriveThresholds(nil, DefaultParams()))
}
