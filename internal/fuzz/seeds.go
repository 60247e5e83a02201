package fuzztests

import "testing"

// maxFuzzInput bounds the format length; the table holds at most 16
// elements, so longer inputs only exercise the overflow path.
const maxFuzzInput = 256

var formatSeeds = []string{
	"",
	"plain text",
	"%%",
	"%d %u %x %o %c %f %e %g %b %p %s",
	"%-08.3f",
	"%#-10x|%+5d|%05u",
	"%.0e %#g",
	"%-s %5c",
	"%%%d%%",
	"%#s",
	"%--d",
	"%5%",
	"%.f",
	"%00d",
	"%.01f",
	"%5-d",
	"%.2.3f",
	"%99999999999d",
	"%",
	"%q",
	"trailing nul\x00",
	"%d%d%d%d%d%d%d%d%d%d%d%d%d%d%d%d%d",
}

func addSeeds(f *testing.F) {
	for _, s := range formatSeeds {
		f.Add(s, false)
		f.Add(s, true)
	}
}

func clampInput(s string) string {
	if len(s) > maxFuzzInput {
		return s[:maxFuzzInput]
	}
	return s
}
