package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// progressMode is the --ui setting of check.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

var progressModes = map[string]progressMode{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressOn,
	"off":  progressOff,
}

func parseProgressMode(value string) (progressMode, error) {
	m, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// wantsProgress reports whether the progress view should draw on w.
// In auto mode w has to be a terminal.
func (m progressMode) wantsProgress(w io.Writer) bool {
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
