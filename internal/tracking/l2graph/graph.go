package l2graph

import (
	"math"
	"sort"

	"github.com/banshee-data/pawlabel/internal/tracking/l1contours"
)

// DefaultTolerance is the default pre-filter distance used by Build.
const DefaultTolerance = 15.0

// NodeKey identifies one blob: its frame and its index within that frame.
type NodeKey struct {
	Frame int
	Index int
}

func (k NodeKey) less(o NodeKey) bool {
	if k.Frame != o.Frame {
		return k.Frame < o.Frame
	}
	return k.Index < o.Index
}

// Graph is an undirected adjacency graph over blob nodes. Edges are always
// stored in both directions.
type Graph struct {
	adj map[NodeKey]map[NodeKey]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[NodeKey]map[NodeKey]struct{})}
}

// AddNode adds k without edges. Adding an existing node is a no-op.
func (g *Graph) AddNode(k NodeKey) {
	if _, ok := g.adj[k]; !ok {
		g.adj[k] = make(map[NodeKey]struct{})
	}
}

// AddEdge connects a and b in both directions, adding missing nodes.
func (g *Graph) AddEdge(a, b NodeKey) {
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// HasEdge reports whether a and b are connected.
func (g *Graph) HasEdge(a, b NodeKey) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Has reports whether k is a node of the graph.
func (g *Graph) Has(k NodeKey) bool {
	_, ok := g.adj[k]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, nb := range g.adj {
		n += len(nb)
	}
	return n / 2
}

// Nodes returns every node ordered by frame, then blob index.
func (g *Graph) Nodes() []NodeKey {
	keys := make([]NodeKey, 0, len(g.adj))
	for k := range g.adj {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Neighbours returns the neighbours of k in node order.
func (g *Graph) Neighbours(k NodeKey) []NodeKey {
	nb := g.adj[k]
	keys := make([]NodeKey, 0, len(nb))
	for n := range nb {
		keys = append(keys, n)
	}
	sortKeys(keys)
	return keys
}

// Symmetric reports whether every edge is present in both directions.
func (g *Graph) Symmetric() bool {
	for a, nb := range g.adj {
		for b := range nb {
			if _, ok := g.adj[b][a]; !ok {
				return false
			}
		}
	}
	return true
}

func sortKeys(keys []NodeKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
}

// Build connects blobs of frame f with overlapping blobs of frame f-1.
// Every blob becomes a node, so isolated single-frame blobs survive into
// the component search.
//
// Before the polygon test, pairs whose first boundary points are more than
// 2*tolerance apart along X are skipped. The first boundary point is only
// a proxy for the blob position, so very elongated blobs offset at that
// point can be missed.
func Build(fb l1contours.FrameBlobs, tolerance float64) *Graph {
	g := NewGraph()
	for _, f := range fb.Frames() {
		current := fb[f]
		previous, hasPrevious := fb[f-1]
		for i, blob := range current {
			key := NodeKey{Frame: f, Index: i}
			g.AddNode(key)
			if !hasPrevious {
				continue
			}
			for j, prev := range previous {
				if math.Abs(float64(blob.First().X-prev.First().X)) > 2*tolerance {
					continue
				}
				if l1contours.Overlaps(blob, prev) {
					g.AddEdge(key, NodeKey{Frame: f - 1, Index: j})
				}
			}
		}
	}
	return g
}
