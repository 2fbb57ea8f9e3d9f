// Package l2graph owns Layer 2 of the contact tracking pipeline: temporal
// association of blobs.
//
// Responsibilities: building the undirected adjacency graph between blobs
// of consecutive frames and partitioning it into connected components.
// Key types: NodeKey, Graph, RawContact.
//
// Dependency rule: l2graph may depend on l1contours, never on l3merge or
// the contact package.
package l2graph
