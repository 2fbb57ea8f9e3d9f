// Package plate owns the pressure tensor recorded by a pressure plate.
//
// Responsibilities: shape and value validation, per-frame matrix views,
// symmetric zero padding and a plain-text frame loader.
// Key types: Tensor.
//
// Dependency rule: plate depends on nothing else in this module.
// Vendor specific file parsing lives outside this package; callers hand
// in an already oriented (row, column, frame) array.
package plate
