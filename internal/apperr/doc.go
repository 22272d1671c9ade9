// Package apperr defines shared error sentinels for lookupkit.
// It is a leaf package with no internal imports, so the validator, the
// request client, and the controllers can all classify failures with
// errors.Is without creating import cycles.
package apperr
