// Package element defines the vocabulary shared by every stage of format
// analysis: element types, flag bits, grammar profiles, table limits and the
// Element record itself.
//
// # Elements
//
// A format string is tiled by elements. Each element starts at a marker
// byte ('%') and ends just past its type byte:
//
//	%[flags][width][.precision]type
//	%%                              escaped marker
//
// The analyzer (internal/format) fills a fixed table of SlotCount elements;
// the first Type == End element is the terminator and every slot after it is
// padding.
//
// # Flags
//
// Flags are a bit set. Each element type permits a subset of them (see
// Permitted); the analyzer rejects anything outside the mask, so a produced
// Element always satisfies Flags&^Permitted(Type) == 0.
package element
