// Package l3merge owns Layer 3 of the contact tracking pipeline: repairing
// over-segmented contacts.
//
// A paw contact is split into several raw contacts when the pressure drops
// to zero for a frame or two, or when its footprint changes shape fast
// enough to break the frame-to-frame overlap. This package scores pairs of
// raw contacts with thresholds derived from the whole batch and unions the
// best pairs.
// Key types: MergeStrategy, Params, Thresholds, UnionFind.
//
// Dependency rule: l3merge may depend on l1contours and l2graph.
package l3merge
