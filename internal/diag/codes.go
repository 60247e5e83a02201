package diag

import (
	"errors"
	"fmt"

	"cefmt/internal/format"
)

type Code uint16

const (
	UnknownCode Code = 0

	// грамматика строки формата
	FmtInfo                  Code = 1000
	FmtTooManyElements       Code = 1001
	FmtArrayOverrun          Code = 1002
	FmtNumeralOverflow       Code = 1003
	FmtMalformed             Code = 1010
	FmtPrecisionNoDigits     Code = 1020
	FmtDuplicateZeroPad      Code = 1021
	FmtFlagAfterNumeral      Code = 1022
	FmtWidthAfterFlags       Code = 1023
	FmtDuplicatePrecision    Code = 1024
	FmtDuplicateFlag         Code = 1025
	FmtPrecisionLeadingZero  Code = 1026
	FmtFlagNotPermitted      Code = 1030
	FmtWidthOnEscape         Code = 1031
	FmtPrecisionNotPermitted Code = 1032
	FmtInternal              Code = 1090

	// проверка аргументов
	ArgInfo         Code = 2000
	ArgCount        Code = 2001
	ArgKindMismatch Code = 2002
	ArgNotLiteral   Code = 2003
	ArgUnsupported  Code = 2004

	// ввод-вывод
	IOInfo          Code = 9000
	IOLoadFileError Code = 9001
	IOParseError    Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	FmtInfo:                  "Format information",
	FmtTooManyElements:       "Too many elements in format string",
	FmtArrayOverrun:          "Element table overrun",
	FmtNumeralOverflow:       "Width or precision too large",
	FmtMalformed:             "Malformed element",
	FmtPrecisionNoDigits:     "Precision without digits",
	FmtDuplicateZeroPad:      "Repeated zero-pad flag",
	FmtFlagAfterNumeral:      "Flag after width or precision",
	FmtWidthAfterFlags:       "Flag inside width",
	FmtDuplicatePrecision:    "Repeated precision",
	FmtDuplicateFlag:         "Repeated flag",
	FmtPrecisionLeadingZero:  "Precision with leading zero",
	FmtFlagNotPermitted:      "Flag not valid for type",
	FmtWidthOnEscape:         "Width on escaped marker",
	FmtPrecisionNotPermitted: "Precision not valid for type",
	FmtInternal:              "Internal analyzer error",
	ArgInfo:                  "Argument information",
	ArgCount:                 "Argument count mismatch",
	ArgKindMismatch:          "Argument type mismatch",
	ArgNotLiteral:            "Format is not a constant",
	ArgUnsupported:           "Argument type cannot be printed",
	IOInfo:                   "I/O information",
	IOLoadFileError:          "I/O load file error",
	IOParseError:             "Go syntax error",
}

var formatCodes = map[error]Code{
	format.ErrTooManyElements:       FmtTooManyElements,
	format.ErrArrayOverrun:          FmtArrayOverrun,
	format.ErrNumeralOverflow:       FmtNumeralOverflow,
	format.ErrMalformed:             FmtMalformed,
	format.ErrPrecisionNoDigits:     FmtPrecisionNoDigits,
	format.ErrDuplicateZeroPad:      FmtDuplicateZeroPad,
	format.ErrFlagAfterNumeral:      FmtFlagAfterNumeral,
	format.ErrWidthAfterFlags:       FmtWidthAfterFlags,
	format.ErrDuplicatePrecision:    FmtDuplicatePrecision,
	format.ErrDuplicateFlag:         FmtDuplicateFlag,
	format.ErrPrecisionLeadingZero:  FmtPrecisionLeadingZero,
	format.ErrFlagNotPermitted:      FmtFlagNotPermitted,
	format.ErrWidthOnEscape:         FmtWidthOnEscape,
	format.ErrPrecisionNotPermitted: FmtPrecisionNotPermitted,
	format.ErrEndMismatch:           FmtInternal,
	format.ErrEndOutOfRange:         FmtInternal,
}

// FormatCode returns the code for an analysis error, or UnknownCode.
func FormatCode(err error) Code {
	var fe *format.Error
	if !errors.As(err, &fe) {
		return UnknownCode
	}
	if c, ok := formatCodes[fe.Err]; ok {
		return c
	}
	return UnknownCode
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
