// Package diag defines the diagnostic model shared by the driver, the vet
// analyzer and the CLI.
//
// A Diagnostic carries a Severity, a numeric Code, a short Message, the
// primary source.Span and optional Notes and Fixes. Codes are grouped by
// range:
//
//   - 1000-1999 (FMT): format string grammar, one code per analyzer error;
//   - 2000-2999 (ARG): argument count and type checks;
//   - 9000-9999 (IO): unreadable or unparsable input files.
//
// Producers emit through a Reporter, usually via ReportBuilder:
//
//	diag.Errorf(r, diag.FmtFlagNotPermitted, span, "%v (element %d)", err, i).
//		WithNote(call, "format used here").
//		WithFix("remove flag", diag.FixEdit{Span: flag}).
//		Emit()
//
// A *Bag is itself a Reporter: bounded storage that can sort and deduplicate.
// Rendering lives in internal/diagfmt.
package diag
