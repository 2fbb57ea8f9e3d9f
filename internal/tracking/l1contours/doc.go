// Package l1contours owns Layer 1 of the contact tracking pipeline:
// per-frame blob extraction.
//
// Responsibilities: binarising a pressure frame (any strictly positive
// reading is present), following the outer border of every 8-connected
// region and exposing each border as a Blob polygon.
// Key types: Blob, FrameBlobs.
//
// Dependency rule: l1contours may depend on plate only. It holds no
// temporal state; every call is a pure function of one frame.
package l1contours
