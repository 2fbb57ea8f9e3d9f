package l3merge

import (
	"container/heap"
	"testing"

	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stats2(a, b l2graph.RawContact) (Stats, Stats) {
	s := Summarise([]l2graph.RawContact{a, b})
	return s[0], s[1]
}

func TestFrameOverlapAndGap(t *testing.T) {
	t.Parallel()

	a, b := stats2(rawBlock(0, 0, 3, 1, 5), rawBlock(0, 0, 3, 7, 11))
	assert.Equal(t, 0, FrameOverlap(a, b))
	assert.Equal(t, 1, FrameGap(a, b), "frame 6 is the only missing frame")

	a, b = stats2(rawBlock(0, 0, 3, 1, 5), rawBlock(0, 0, 3, 4, 8))
	assert.Equal(t, 2, FrameOverlap(a, b))
	assert.Equal(t, 0, FrameGap(a, b))

	a, b = stats2(rawBlock(0, 0, 3, 1, 5), rawBlock(0, 0, 3, 6, 8))
	assert.Equal(t, 0, FrameGap(a, b), "adjacent frames leave no gap")
}

func TestEligible_Rules(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	th := Thresholds{Frame: 4, Distance: 10, Surface: 20}

	t.Run("overlap at threshold", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 5, 0, 9), rawBlock(0, 0, 5, 6, 12))
		assert.Equal(t, RuleOverlap, Eligible(a, b, th, p))
	})

	t.Run("short contact with any overlap", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 5, 0, 3), rawBlock(0, 0, 5, 3, 20))
		assert.Equal(t, RuleShortContact, Eligible(a, b, th, p))
	})

	t.Run("half of the first contact overlaps", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 5, 0, 5), rawBlock(0, 0, 5, 3, 20))
		assert.Equal(t, RuleRatio, Eligible(a, b, th, p))
	})

	t.Run("small contact with a fifth overlapping", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 4, 0, 9), rawBlock(0, 0, 4, 8, 20))
		assert.Equal(t, RuleSmallContact, Eligible(a, b, th, p))

		big, other := stats2(rawBlock(0, 0, 5, 0, 9), rawBlock(0, 0, 5, 8, 20))
		assert.Equal(t, RuleNone, Eligible(big, other, th, p), "25 px is not below the surface threshold")
	})

	t.Run("gap bridge for short contacts", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 5, 0, 3), rawBlock(0, 0, 5, 8, 20))
		assert.Equal(t, RuleGapBridge, Eligible(a, b, th, p))

		a, b = stats2(rawBlock(0, 0, 5, 0, 3), rawBlock(0, 0, 5, 9, 20))
		assert.Equal(t, RuleNone, Eligible(a, b, th, p), "five missing frames is too wide")
	})

	t.Run("asymmetric", func(t *testing.T) {
		a, b := stats2(rawBlock(0, 0, 5, 0, 3), rawBlock(0, 0, 5, 8, 20))
		assert.Equal(t, RuleNone, Eligible(b, a, th, p))
	})
}

func TestAffinity(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	th := Thresholds{Frame: 4, Distance: 10, Surface: 20}

	a, b := stats2(rawBlock(0, 0, 4, 0, 9), rawBlock(2, 0, 4, 5, 14))
	assert.InDelta(t, (10.0-2)*5, Affinity(a, b, RuleOverlap, th, p), 1e-9)

	// b visits frames 5..14 of a's widened range; where a is absent its
	// overall centre is used, which sits at the same distance.
	assert.InDelta(t, 10.0-2, Affinity(a, b, RuleGapBridge, th, p), 1e-9)

	far, other := stats2(rawBlock(0, 0, 4, 0, 3), rawBlock(0, 0, 4, 20, 30))
	assert.Equal(t, 0.0, Affinity(far, other, RuleGapBridge, th, p), "no frames to compare")
}

func TestCandidateHeap_Order(t *testing.T) {
	t.Parallel()

	h := newCandidateHeap([]Candidate{
		{A: 2, B: 0, Score: 1},
		{A: 1, B: 2, Score: 5},
		{A: 0, B: 2, Score: 5},
		{A: 0, B: 1, Score: 5},
		{A: 3, B: 0, Score: -2},
	})
	var got [][2]int
	for h.Len() > 0 {
		c := heap.Pop(h).(Candidate)
		got = append(got, [2]int{c.A, c.B})
	}
	require.Len(t, got, 5)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 0}, {3, 0}}, got)
}

func TestCandidates_DistanceFilter(t *testing.T) {
	t.Parallel()

	raw := []l2graph.RawContact{
		rawBlock(0, 0, 4, 0, 9),
		rawBlock(0, 0, 4, 5, 14),
		rawBlock(100, 0, 4, 5, 14),
	}
	plan := NewPlan(raw, DefaultParams())
	for _, c := range plan.Candidates {
		assert.NotEqual(t, 2, c.A)
		assert.NotEqual(t, 2, c.B)
	}
	assert.NotEmpty(t, plan.Candidates)
}
