package wgs

import "errors"

// Sentinel errors for the container-store format. Callers match them with
// errors.Is; every site that returns one wraps it with the file and field
// context needed to diagnose a format mismatch without a debugger.
var (
	// ErrUnsupportedVersion indicates an index or manifest version tag this
	// package does not recognize. Fatal, no partial recovery is attempted.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrStructuralMismatch indicates a cross-field invariant violation:
	// duplicate-name fields that differ, flag/cloud-id inconsistency, or a
	// nonzero reserved field. It signals either corruption or a newer,
	// undocumented format variant.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrMissingContentBlob indicates a manifest entry whose identifier has
	// no backing content file in the container directory.
	ErrMissingContentBlob = errors.New("missing content blob")
)
