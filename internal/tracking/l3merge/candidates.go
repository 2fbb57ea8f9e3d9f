package l3merge

import (
	"container/heap"
	"math"

	"github.com/paulmach/orb/planar"
)

// Overlap ratios used by the acceptance rules.
const (
	lenientRatio = 0.5
	smallRatio   = 0.2
)

// Rule names the acceptance rule that made a pair eligible.
type Rule int

const (
	RuleNone Rule = iota
	RuleOverlap
	RuleShortContact
	RuleRatio
	RuleSmallContact
	RuleGapBridge
)

func (r Rule) String() string {
	switch r {
	case RuleOverlap:
		return "overlap"
	case RuleShortContact:
		return "short-contact"
	case RuleRatio:
		return "ratio"
	case RuleSmallContact:
		return "small-contact"
	case RuleGapBridge:
		return "gap-bridge"
	default:
		return "none"
	}
}

// FrameOverlap returns the number of frames present in both contacts.
func FrameOverlap(a, b Stats) int {
	n := 0
	for _, f := range a.Frames {
		if b.Has(f) {
			n++
		}
	}
	return n
}

// FrameGap returns the number of empty frames between the closest frames
// of a and b, or 0 when they share a frame.
func FrameGap(a, b Stats) int {
	best := math.MaxInt
	for _, fa := range a.Frames {
		for _, fb := range b.Frames {
			d := fa - fb
			if d < 0 {
				d = -d
			}
			if d < best {
				best = d
			}
		}
	}
	if best == 0 || best == math.MaxInt {
		return 0
	}
	return best - 1
}

// Eligible applies the acceptance rules to the ordered pair (a, b). The
// rules look at a's length and surface only, so the relation is not
// symmetric.
func Eligible(a, b Stats, th Thresholds, p Params) Rule {
	overlap := FrameOverlap(a, b)
	ratio := float64(overlap) / float64(a.Length)
	short := float64(a.Length) <= th.Frame

	switch {
	case float64(overlap) >= th.Frame:
		return RuleOverlap
	case short && overlap > 0:
		return RuleShortContact
	case ratio >= lenientRatio:
		return RuleRatio
	case ratio >= smallRatio && a.Surface < th.Surface:
		return RuleSmallContact
	case overlap == 0 && short && FrameGap(a, b) < p.GapFrames:
		return RuleGapBridge
	}
	return RuleNone
}

// Affinity scores an eligible pair; higher means the pair should merge
// first. Pairs accepted on raw overlap score by centre distance and overlap
// count. Other pairs score by how close b stays to a over a's frame range
// widened by GapFrames on each side, normalised by the frames compared.
func Affinity(a, b Stats, rule Rule, th Thresholds, p Params) float64 {
	if rule == RuleOverlap {
		d := planar.Distance(a.Center, b.Center)
		return (th.Distance - d) * float64(FrameOverlap(a, b))
	}
	var sum float64
	considered := 0
	for f := a.First() - p.GapFrames; f <= a.Last()+p.GapFrames; f++ {
		if !b.Has(f) {
			continue
		}
		considered++
		d := planar.Distance(a.CenterAt(f), b.CenterAt(f))
		if d <= th.Distance {
			sum += th.Distance - d
		}
	}
	if considered == 0 {
		return 0
	}
	return sum / float64(considered)
}

// Candidate is an eligible ordered pair of raw contacts.
type Candidate struct {
	A, B  int
	Rule  Rule
	Score float64
}

// Candidates returns every eligible ordered pair whose centres are within
// the distance threshold, in (A, B) order.
func Candidates(stats []Stats, th Thresholds, p Params) []Candidate {
	var out []Candidate
	for i := range stats {
		for j := range stats {
			if i == j {
				continue
			}
			if planar.Distance(stats[i].Center, stats[j].Center) > th.Distance {
				continue
			}
			rule := Eligible(stats[i], stats[j], th, p)
			if rule == RuleNone {
				continue
			}
			out = append(out, Candidate{
				A:     i,
				B:     j,
				Rule:  rule,
				Score: Affinity(stats[i], stats[j], rule, th, p),
			})
		}
	}
	return out
}

// candidateHeap pops the highest score first. Equal scores pop in (A, B)
// order so runs are reproducible.
type candidateHeap []Candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	if h[i].A != h[j].A {
		return h[i].A < h[j].A
	}
	return h[i].B < h[j].B
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)   { *h = append(*h, x.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

func newCandidateHeap(cands []Candidate) *candidateHeap {
	h := make(candidateHeap, len(cands))
	copy(h, cands)
	heap.Init(&h)
	return &h
}
