package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

// Version information for the cocomig CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine readable build description.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
}

// Current returns the build description.
func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
	}
}

// Pretty renders the version with each semver component colored.
// Color is controlled by the fatih/color global switch.
func Pretty() string {
	major, minor, rest, ok := splitSemver(Version)
	if !ok {
		return Version
	}
	patch, suffix := rest, ""
	for i, r := range rest {
		if r == '-' || r == '+' {
			patch, suffix = rest[:i], rest[i:]
			break
		}
	}
	return versionMajorColor.Sprint(major) + "." + versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

// String is the one-line "cocomig <version> (<commit>, <date>)" banner.
func (i Info) String() string {
	s := fmt.Sprintf("cocomig %s", i.Version)
	switch {
	case i.GitCommit != "" && i.BuildDate != "":
		s += fmt.Sprintf(" (%s, %s)", i.GitCommit, i.BuildDate)
	case i.GitCommit != "":
		s += fmt.Sprintf(" (%s)", i.GitCommit)
	case i.BuildDate != "":
		s += fmt.Sprintf(" (%s)", i.BuildDate)
	}
	return s
}

func splitSemver(v string) (major, minor, rest string, ok bool) {
	first := -1
	for i := 0; i < len(v); i++ {
		if v[i] != '.' {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		return v[:first], v[first+1 : i], v[i+1:], first > 0 && i > first+1
	}
	return "", "", "", false
}
