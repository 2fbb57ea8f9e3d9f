package l3merge

import (
	"image"

	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"
)

// minSide is the smallest bounding box side that contributes to the mean
// side length. Thinner boxes come from degenerate single-point blobs.
const minSide = 2

// Params holds the merge tuning values.
type Params struct {
	TemporalRatio float64 // scales the mean contact length
	SpatialRatio  float64 // scales the mean bounding box side
	SurfaceRatio  float64 // scales the mean bounding box surface
	GapFrames     int     // widest temporal gap that can be bridged
}

// DefaultParams returns the production merge parameters.
func DefaultParams() Params {
	return Params{
		TemporalRatio: 0.5,
		SpatialRatio:  1.25,
		SurfaceRatio:  0.25,
		GapFrames:     5,
	}
}

// Stats summarises one raw contact for merging.
type Stats struct {
	Bounds  image.Rectangle
	Center  orb.Point
	Width   int
	Height  int
	Surface float64
	Length  int
	Frames  []int

	frameSet     map[int]struct{}
	frameCenters map[int]orb.Point
}

// First returns the first frame of the contact.
func (s Stats) First() int { return s.Frames[0] }

// Last returns the last frame of the contact.
func (s Stats) Last() int { return s.Frames[len(s.Frames)-1] }

// Has reports whether the contact holds blobs in frame f.
func (s Stats) Has(f int) bool {
	_, ok := s.frameSet[f]
	return ok
}

// CenterAt returns the centre of the contact's blobs in frame f, or the
// overall centre when the contact is absent from f.
func (s Stats) CenterAt(f int) orb.Point {
	if c, ok := s.frameCenters[f]; ok {
		return c
	}
	return s.Center
}

// Summarise computes Stats for every raw contact, in input order.
func Summarise(raw []l2graph.RawContact) []Stats {
	out := make([]Stats, len(raw))
	for i, rc := range raw {
		s := Stats{
			Frames:       rc.Frames(),
			frameSet:     make(map[int]struct{}, len(rc)),
			frameCenters: make(map[int]orb.Point, len(rc)),
		}
		first := true
		for _, f := range s.Frames {
			s.frameSet[f] = struct{}{}
			var fr image.Rectangle
			for k, b := range rc[f] {
				if k == 0 {
					fr = b.BoundingRect()
				} else {
					fr = fr.Union(b.BoundingRect())
				}
			}
			s.frameCenters[f] = center(fr)
			if first {
				s.Bounds = fr
				first = false
			} else {
				s.Bounds = s.Bounds.Union(fr)
			}
		}
		s.Center = center(s.Bounds)
		s.Width = s.Bounds.Dx()
		s.Height = s.Bounds.Dy()
		s.Surface = float64(s.Width * s.Height)
		s.Length = len(s.Frames)
		out[i] = s
	}
	return out
}

func center(r image.Rectangle) orb.Point {
	return orb.Point{
		float64(r.Min.X+r.Max.X) / 2,
		float64(r.Min.Y+r.Max.Y) / 2,
	}
}

// Thresholds are derived from the current batch of raw contacts and are
// recomputed on every merge run.
type Thresholds struct {
	Frame    float64 // mean length × TemporalRatio
	Distance float64 // mean side × SpatialRatio
	Surface  float64 // mean surface × SurfaceRatio
}

// DeriveThresholds computes the adaptive thresholds for stats. When no
// bounding box side exceeds minSide every side is used instead, so a batch
// of tiny contacts still gets a usable distance.
func DeriveThresholds(stats []Stats, p Params) Thresholds {
	if len(stats) == 0 {
		return Thresholds{}
	}
	lengths := make([]float64, 0, len(stats))
	surfaces := make([]float64, 0, len(stats))
	var sides, allSides []float64
	for _, s := range stats {
		lengths = append(lengths, float64(s.Length))
		surfaces = append(surfaces, s.Surface)
		for _, side := range []int{s.Width, s.Height} {
			allSides = append(allSides, float64(side))
			if side > minSide {
				sides = append(sides, float64(side))
			}
		}
	}
	if len(sides) == 0 {
		sides = allSides
	}
	return Thresholds{
		Frame:    stat.Mean(lengths, nil) * p.TemporalRatio,
		Distance: stat.Mean(sides, nil) * p.SpatialRatio,
		Surface:  stat.Mean(surfaces, nil) * p.SurfaceRatio,
	}
}
