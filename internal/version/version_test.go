package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestDescribe(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Describe(false); got != "wrapgen 1.2.3" {
		t.Errorf("Describe() = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2026-01-15"
	if got := Describe(false); got != "wrapgen 1.2.3 (commit abc123, built 2026-01-15)" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestColoredKeepsText(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	Version = "0.4.1-rc1"
	if got := Colored(); got != "0.4.1-rc1" {
		t.Errorf("Colored() = %q", got)
	}
	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q", got)
	}
}
