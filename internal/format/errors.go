package format

import (
	"errors"
	"fmt"
)

// ErrorKind classifies analysis failures.
type ErrorKind uint8

const (
	// KindOverflow: too many elements or an oversized numeral.
	KindOverflow ErrorKind = iota + 1
	// KindMalformed: no type byte before the end of the string.
	KindMalformed
	// KindOrdering: flags, width and precision out of order or repeated.
	KindOrdering
	// KindSemantic: a well-formed element that its type does not allow.
	KindSemantic
	// KindInternal: the analyzer disagrees with itself.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindOverflow:
		return "overflow"
	case KindMalformed:
		return "malformed"
	case KindOrdering:
		return "ordering"
	case KindSemantic:
		return "semantic"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

var (
	ErrTooManyElements = errors.New("number of elements exceeds maximum")
	ErrArrayOverrun    = errors.New("element array overrun")
	ErrNumeralOverflow = errors.New("numeral too large")

	ErrMalformed = errors.New("format string overflow; malformed element")

	ErrPrecisionNoDigits    = errors.New("expected numeral after precision marker")
	ErrDuplicateZeroPad     = errors.New("only one leading zero in width is permitted")
	ErrFlagAfterNumeral     = errors.New("flags must occur before width and precision")
	ErrWidthAfterFlags      = errors.New("width must come after flags")
	ErrDuplicatePrecision   = errors.New("precision specified more than once")
	ErrDuplicateFlag        = errors.New("flag specified more than once")
	ErrPrecisionLeadingZero = errors.New("precision must not have leading zeros")

	ErrFlagNotPermitted      = errors.New("element flag(s) not valid with type")
	ErrWidthOnEscape         = errors.New("element width not permitted with escape")
	ErrPrecisionNotPermitted = errors.New("element precision not permitted with type")

	ErrEndMismatch   = errors.New("internal: element size improperly calculated")
	ErrEndOutOfRange = errors.New("internal: element ends past format string")
)

var errorKinds = map[error]ErrorKind{
	ErrTooManyElements: KindOverflow,
	ErrArrayOverrun:    KindOverflow,
	ErrNumeralOverflow: KindOverflow,

	ErrMalformed: KindMalformed,

	ErrPrecisionNoDigits:    KindOrdering,
	ErrDuplicateZeroPad:     KindOrdering,
	ErrFlagAfterNumeral:     KindOrdering,
	ErrWidthAfterFlags:      KindOrdering,
	ErrDuplicatePrecision:   KindOrdering,
	ErrDuplicateFlag:        KindOrdering,
	ErrPrecisionLeadingZero: KindOrdering,

	ErrFlagNotPermitted:      KindSemantic,
	ErrWidthOnEscape:         KindSemantic,
	ErrPrecisionNotPermitted: KindSemantic,

	ErrEndMismatch:   KindInternal,
	ErrEndOutOfRange: KindInternal,
}

// Error describes why a format string was rejected.
type Error struct {
	Kind   ErrorKind
	Err    error  // one of the Err* sentinels
	Format string // the analyzed string
	Index  int    // element slot being analyzed
	Offset int    // byte offset of the offending byte
}

func newError(sentinel error, src string, index, offset int) *Error {
	return &Error{
		Kind:   errorKinds[sentinel],
		Err:    sentinel,
		Format: src,
		Index:  index,
		Offset: offset,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("format %q: element %d at offset %d: %v", e.Format, e.Index, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an analysis error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
