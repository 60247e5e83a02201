// Package render writes arguments through an analyzed format.
//
// Arguments are type-checked against the literal elements first; nothing is
// written when the check fails. Each element is rendered from a fresh field,
// so flags, fill and width never leak into the next element. Width counts
// bytes.
package render
