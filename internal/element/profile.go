package element

import (
	"fmt"
	"strings"
)

// Profile selects a grammar variant.
type Profile uint8

const (
	// Extended adds precision, the character type and the 'e'/'g' float verbs.
	Extended Profile = iota
	// Basic accepts only flags, width and the d u x o f b p s types.
	Basic
)

// String returns the profile name used in configuration.
func (p Profile) String() string {
	switch p {
	case Extended:
		return "extended"
	case Basic:
		return "basic"
	default:
		return "unknown"
	}
}

// HasPrecision reports whether the profile accepts a precision segment.
func (p Profile) HasPrecision() bool {
	return p == Extended
}

// ParseProfile converts a configuration value into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "extended":
		return Extended, nil
	case "basic":
		return Basic, nil
	default:
		return Extended, fmt.Errorf("unknown grammar profile %q (expected basic|extended)", s)
	}
}
