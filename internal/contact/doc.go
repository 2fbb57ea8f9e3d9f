// Package contact owns the validated, user-facing paw contact.
//
// Responsibilities: turning a merged raw contact into a Contact (bounding
// box, padding removal, pixel filtering), the structural validity checks
// (edge touch, incomplete step), the per-frame summary series, the closed
// paw label set and a lossless record form for persistence.
// Key types: Contact, Label, Options, Record.
//
// The package never assigns paw identities itself; labels are written by
// the caller.
package contact
