// Package tracking orchestrates the contact tracking pipeline.
//
// It wires the layer packages into one batch run over a recording: pad the
// tensor, extract blobs per frame (l1contours), link them across frames and
// split the graph into raw contacts (l2graph), repair over-segmentation
// (l3merge) and build validated contacts (contact). The pipeline owns no
// domain logic of its own; it delegates to the layers.
package tracking
