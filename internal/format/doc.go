// Package format analyzes printf-style format strings into immutable element
// tables.
//
// Pipeline: bytes → particles (internal/particle) → elements → Format.
//
// Analyze drives the element analyzer over element.SlotCount slots. Slot i
// starts where slot i-1 ended; the first slot that finds no marker becomes
// the terminator and every later slot is padding. The produced Format is
// never mutated and may be shared freely.
//
// Each element is analyzed by independent rescans starting just after its
// marker: type, flags, width, precision. The element end is then recomputed
// from the parsed values and must land exactly where the type scan stopped;
// any disagreement is reported as an internal error.
//
// Errors abort the whole analysis. They are *Error values wrapping one of
// the sentinel errors declared in errors.go.
//
// Cache memoizes analyses per (profile, string) and collapses concurrent
// requests for the same key.
package format
