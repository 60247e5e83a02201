package element

import "math"

const (
	// MaxElements is the maximum number of elements (escapes included) in one format.
	MaxElements = 16
	// SlotCount is the size of the element table: MaxElements plus the terminator slot.
	SlotCount = MaxElements + 1
	// LastSlot is the index of the terminator slot.
	LastSlot = SlotCount - 1

	// Marker introduces every element.
	Marker byte = '%'
	// PrecisionMarker introduces the precision segment.
	PrecisionMarker byte = '.'

	// MaxNumeral bounds width and precision literals.
	MaxNumeral = math.MaxInt32

	// NoPrecision marks an unspecified precision.
	NoPrecision = -1
)
