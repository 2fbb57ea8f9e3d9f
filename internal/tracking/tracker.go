package tracking

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/pawlabel/internal/contact"
	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/banshee-data/pawlabel/internal/tracking/l1contours"
	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
	"github.com/banshee-data/pawlabel/internal/tracking/l3merge"
)

// Tracker runs the full pipeline over recordings. Contact IDs come from one
// sequence for the lifetime of the Tracker, so they are unique across runs.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	Config Config
	seq    contact.Sequence
}

// NewTracker returns a Tracker using cfg. A nil Strategy selects greedy
// merging.
func NewTracker(cfg Config) *Tracker {
	if cfg.Strategy == nil {
		cfg.Strategy = l3merge.Greedy{}
	}
	return &Tracker{Config: cfg}
}

// Observe reserves ids that were restored from storage so that later runs
// never hand them out again.
func (tr *Tracker) Observe(ids ...int) {
	for _, id := range ids {
		tr.seq.Observe(id)
	}
}

// stage holds the intermediate products of one run.
type stage struct {
	padded *plate.Tensor
	blobs  l1contours.FrameBlobs
	graph  *l2graph.Graph
	raw    []l2graph.RawContact
}

func (tr *Tracker) detect(t *plate.Tensor) (*stage, error) {
	if t == nil || t.IsZero() {
		return nil, plate.ErrEmptyTensor
	}
	s := &stage{padded: t.Pad(tr.Config.Contact.Padding)}
	s.blobs = l1contours.ExtractAll(s.padded)
	s.graph = l2graph.Build(s.blobs, tr.Config.Tolerance)
	s.raw = l2graph.Components(s.graph, s.blobs)

	rows, cols, frames := t.Dims()
	diagf("plate %dx%dx%d: %d blobs in %d frames, %d edges, %d raw contacts",
		rows, cols, frames, s.blobs.Count(), len(s.blobs), s.graph.EdgeCount(), len(s.raw))
	return s, nil
}

// TrackRaw runs extraction and component search only and returns the raw
// contacts before merging. Blob coordinates are in the padded space.
func (tr *Tracker) TrackRaw(t *plate.Tensor) ([]l2graph.RawContact, error) {
	s, err := tr.detect(t)
	if err != nil {
		return nil, err
	}
	return s.raw, nil
}

// Track turns a recording into contacts ordered by first frame, then by
// leftmost column. An all-zero recording returns plate.ErrEmptyTensor; a
// recording whose readings form no contact returns an empty slice.
func (tr *Tracker) Track(t *plate.Tensor) ([]*contact.Contact, error) {
	s, err := tr.detect(t)
	if err != nil {
		return nil, err
	}

	merged := tr.Config.Strategy.Merge(s.raw, tr.Config.Merge)
	diagf("%s merge: %d raw contacts -> %d", tr.Config.Strategy.Name(), len(s.raw), len(merged))
	sortRaw(merged)

	out := make([]*contact.Contact, 0, len(merged))
	invalid := 0
	for _, rc := range merged {
		c, err := contact.Build(tr.seq.Next(), rc, s.padded, tr.Config.Contact)
		if err != nil {
			opsf("building contact: %v", err)
			return nil, fmt.Errorf("build contact: %w", err)
		}
		if c.Invalid {
			invalid++
		}
		tracef("contact %d: frames %d..%d (%d present), x %d..%d, y %d..%d, invalid=%v",
			c.ID, c.MinFrame(), c.MaxFrame(), c.Length(), c.MinX, c.MaxX, c.MinY, c.MaxY, c.Invalid)
		out = append(out, c)
	}
	diagf("%d contacts, %d invalid", len(out), invalid)
	return out, nil
}

// sortRaw orders raw contacts by first frame, then by minimum column.
func sortRaw(raw []l2graph.RawContact) {
	type key struct{ frame, col int }
	keys := make([]key, len(raw))
	for i, rc := range raw {
		keys[i] = key{frame: math.MaxInt, col: math.MaxInt}
		for f, blobs := range rc {
			keys[i].frame = min(keys[i].frame, f)
			for _, b := range blobs {
				for _, p := range b.Points {
					keys[i].col = min(keys[i].col, p.X)
				}
			}
		}
	}
	idx := make([]int, len(raw))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.frame != kb.frame {
			return ka.frame < kb.frame
		}
		return ka.col < kb.col
	})
	sorted := make([]l2graph.RawContact, len(raw))
	for i, j := range idx {
		sorted[i] = raw[j]
	}
	copy(raw, sorted)
}
