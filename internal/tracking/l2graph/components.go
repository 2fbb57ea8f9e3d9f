package l2graph

import (
	"sort"

	"github.com/banshee-data/pawlabel/internal/tracking/l1contours"
)

// RawContact is an unvalidated group of blobs across frames: one connected
// component of the adjacency graph, possibly later unioned with others by
// the merge step.
type RawContact map[int][]l1contours.Blob

// Frames returns the frames holding blobs in ascending order.
func (rc RawContact) Frames() []int {
	frames := make([]int, 0, len(rc))
	for f := range rc {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// BlobCount returns the number of blobs over all frames.
func (rc RawContact) BlobCount() int {
	n := 0
	for _, blobs := range rc {
		n += len(blobs)
	}
	return n
}

// Union returns a new raw contact holding the blobs of rc and other. A blob
// present in both, compared by boundary, is kept once.
func (rc RawContact) Union(other RawContact) RawContact {
	out := make(RawContact, len(rc)+len(other))
	for f, blobs := range rc {
		out[f] = append([]l1contours.Blob(nil), blobs...)
	}
	for f, blobs := range other {
		for _, b := range blobs {
			if !containsBlob(out[f], b) {
				out[f] = append(out[f], b)
			}
		}
	}
	return out
}

func containsBlob(blobs []l1contours.Blob, b l1contours.Blob) bool {
	for _, x := range blobs {
		if len(x.Points) != len(b.Points) {
			continue
		}
		same := true
		for i := range x.Points {
			if x.Points[i] != b.Points[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// Components partitions g into connected components with a breadth-first
// search, starting from unvisited nodes in node order. Each node is visited
// exactly once. Within a frame a component's blobs keep their index order.
func Components(g *Graph, fb l1contours.FrameBlobs) []RawContact {
	visited := make(map[NodeKey]bool, g.Len())
	var out []RawContact

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		visited[start] = true
		members := []NodeKey{start}
		for i := 0; i < len(members); i++ {
			for _, n := range g.Neighbours(members[i]) {
				if !visited[n] {
					visited[n] = true
					members = append(members, n)
				}
			}
		}

		sortKeys(members)
		rc := make(RawContact)
		for _, k := range members {
			rc[k.Frame] = append(rc[k.Frame], fb[k.Frame][k.Index])
		}
		out = append(out, rc)
	}
	return out
}
