package version

import (
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestString(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	tests := []struct {
		name                  string
		version, commit, date string
		want                  string
	}{
		{"default", "0.1.0-dev", "", "", "cefmt 0.1.0-dev"},
		{"release", "1.2.3", "", "", "cefmt 1.2.3"},
		{"commit", "1.2.3", "abc123", "", "cefmt 1.2.3 (commit abc123)"},
		{"full", "1.0.0-rc.1", "abc123", "2026-01-15", "cefmt 1.0.0-rc.1 (commit abc123, built 2026-01-15)"},
		{"not semver", "devel", "", "", "cefmt devel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override(t, tt.version, tt.commit, tt.date)
			if got := String("cefmt"); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColored(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })
	override(t, "1.2.3-dev", "", "")

	got := Colored()
	if got == Version {
		t.Fatal("expected escape sequences around version numbers")
	}
	want := versionMajorColor.Sprint("1") + "." + versionMinorColor.Sprint("2") + "." + versionPatchColor.Sprint("3") + "-dev"
	if got != want {
		t.Errorf("Colored() = %q, want %q", got, want)
	}
}
