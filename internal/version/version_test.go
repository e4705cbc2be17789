package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate are optional
	_ = GitCommit
	_ = BuildDate
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate }()

	// simulating build-time ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("Current() = %+v", info)
	}
	if got, want := info.String(), "cocomig 1.2.3 (abc123def456, 2024-01-15T10:30:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestVersion_StringOptionalFields(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{Version: "0.1.0"}, "cocomig 0.1.0"},
		{Info{Version: "0.1.0", GitCommit: "abc"}, "cocomig 0.1.0 (abc)"},
		{Info{Version: "0.1.0", BuildDate: "2024-01-15"}, "cocomig 0.1.0 (2024-01-15)"},
	}
	for _, tc := range cases {
		if got := tc.info.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestVersion_PrettyWithoutColor(t *testing.T) {
	orig := Version
	origNoColor := color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	validVersions := []string{
		"0.1.0",
		"1.0.0",
		"2.0.0-alpha",
		"1.0.0-beta.1",
		"0.1.0-dev",
		"1.2.3-rc.1+build.123",
		"garbage",
	}
	for _, v := range validVersions {
		Version = v
		if got := Pretty(); got != v {
			t.Errorf("Pretty() = %q, want %q", got, v)
		}
	}
}

func TestSplitSemver(t *testing.T) {
	major, minor, rest, ok := splitSemver("1.22.3-rc.1")
	if !ok || major != "1" || minor != "22" || rest != "3-rc.1" {
		t.Errorf("splitSemver = %q %q %q %v", major, minor, rest, ok)
	}
	if _, _, _, ok := splitSemver("1..3"); ok {
		t.Error("empty minor must not split")
	}
}
