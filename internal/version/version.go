package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable with -ldflags "-X wrapgen/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own colour.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Describe is the one-line summary printed by `wrapgen version`.
func Describe(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var extra []string
	if GitCommit != "" {
		extra = append(extra, "commit "+GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, "built "+BuildDate)
	}
	if len(extra) == 0 {
		return fmt.Sprintf("wrapgen %s", v)
	}
	return fmt.Sprintf("wrapgen %s (%s)", v, strings.Join(extra, ", "))
}
