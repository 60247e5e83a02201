// Package testkit holds assertions shared by tests of the diagnostic
// producers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cefmt/internal/diag"
	"cefmt/internal/source"
)

// CheckSpanInvariants verifies the spans of every diagnostic in bag:
// each span names a file of fs, is ordered, and lies within the file
// content. Primary spans must also be non-empty unless the file is empty.
func CheckSpanInvariants(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || fs == nil {
		return fmt.Errorf("nil bag or file set")
	}
	for i, d := range bag.Items() {
		if err := checkSpan(fs, d.Primary, true); err != nil {
			return fmt.Errorf("diagnostic %d (%s) primary: %w", i, d.Code.ID(), err)
		}
		for j, n := range d.Notes {
			if err := checkSpan(fs, n.Span, false); err != nil {
				return fmt.Errorf("diagnostic %d (%s) note %d: %w", i, d.Code.ID(), j, err)
			}
		}
		for j, f := range d.Fixes {
			for k, e := range f.Edits {
				if err := checkSpan(fs, e.Span, false); err != nil {
					return fmt.Errorf("diagnostic %d (%s) fix %d edit %d: %w", i, d.Code.ID(), j, k, err)
				}
			}
		}
	}
	return nil
}

func checkSpan(fs *source.FileSet, sp source.Span, nonEmpty bool) error {
	if int(sp.File) >= fs.Len() {
		return fmt.Errorf("span %v names unknown file %d", sp, sp.File)
	}
	sf := fs.Get(sp.File)
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("span %v is reversed", sp)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span %v ends beyond content (%d bytes)", sp, lenContent)
	}
	if nonEmpty && sp.Empty() && lenContent > 0 {
		return fmt.Errorf("span %v is empty", sp)
	}
	return nil
}
