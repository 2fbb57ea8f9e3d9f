package l3merge

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
)

// MergeStrategy repairs over-segmentation in a batch of raw contacts.
// Implementations never return more contacts than they were given.
type MergeStrategy interface {
	Name() string
	Merge(raw []l2graph.RawContact, p Params) []l2graph.RawContact
}

// Strategy names accepted by StrategyByName.
const (
	StrategyGreedy        = "greedy"
	StrategyAgglomerative = "agglomerative"
)

// StrategyByName returns the strategy registered under name. An empty name
// selects the greedy strategy.
func StrategyByName(name string) (MergeStrategy, error) {
	switch name {
	case "", StrategyGreedy:
		return Greedy{}, nil
	case StrategyAgglomerative:
		return Agglomerative{}, nil
	}
	return nil, fmt.Errorf("unknown merge strategy %q", name)
}

// Plan is the intermediate state of a merge run, exposed for diagnostics.
type Plan struct {
	Stats      []Stats
	Thresholds Thresholds
	Candidates []Candidate
}

// NewPlan summarises raw, derives thresholds from this batch and collects
// the eligible candidate pairs.
func NewPlan(raw []l2graph.RawContact, p Params) Plan {
	stats := Summarise(raw)
	th := DeriveThresholds(stats, p)
	return Plan{Stats: stats, Thresholds: th, Candidates: Candidates(stats, th, p)}
}

// Greedy pops candidates by descending affinity and unions each pair whose
// first contact has not initiated a merge before. A contact is marked as
// explored only when its pair joins two different clusters; a pair already
// inside one cluster is skipped without spending it. Later pairs led by an
// explored contact are ignored, which keeps the run bounded and makes the
// result depend on pop order.
type Greedy struct{}

// Name implements MergeStrategy.
func (Greedy) Name() string { return StrategyGreedy }

// Merge implements MergeStrategy.
func (Greedy) Merge(raw []l2graph.RawContact, p Params) []l2graph.RawContact {
	if len(raw) < 2 {
		return raw
	}
	plan := NewPlan(raw, p)
	uf := NewUnionFind(len(raw))
	explored := make([]bool, len(raw))
	remaining := len(raw)

	h := newCandidateHeap(plan.Candidates)
	for h.Len() > 0 && remaining > 0 {
		c := heap.Pop(h).(Candidate)
		if explored[c.A] || uf.Find(c.A) == uf.Find(c.B) {
			continue
		}
		uf.Union(c.A, c.B)
		explored[c.A] = true
		remaining--
	}
	return Materialise(raw, uf)
}

// Agglomerative unions every eligible pair in descending affinity order,
// without the explored-once bound of Greedy.
type Agglomerative struct{}

// Name implements MergeStrategy.
func (Agglomerative) Name() string { return StrategyAgglomerative }

// Merge implements MergeStrategy.
func (Agglomerative) Merge(raw []l2graph.RawContact, p Params) []l2graph.RawContact {
	if len(raw) < 2 {
		return raw
	}
	plan := NewPlan(raw, p)
	cands := append([]Candidate(nil), plan.Candidates...)
	sort.SliceStable(cands, func(i, j int) bool {
		return candidateHeap(cands).Less(i, j)
	})
	uf := NewUnionFind(len(raw))
	for _, c := range cands {
		uf.Union(c.A, c.B)
	}
	return Materialise(raw, uf)
}

// Materialise unions the raw contacts of every cluster into one raw
// contact. Output follows cluster order.
func Materialise(raw []l2graph.RawContact, uf *UnionFind) []l2graph.RawContact {
	clusters := uf.Clusters()
	out := make([]l2graph.RawContact, 0, len(clusters))
	for _, members := range clusters {
		merged := raw[members[0]]
		for _, m := range members[1:] {
			merged = merged.Union(raw[m])
		}
		out = append(out, merged)
	}
	return out
}
