package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored_PlainWhenColorDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []string{
		"0.1.0",
		"0.1.0-dev",
		"1.2.3-rc.1+build.123",
		"not-a-version",
		"1.2",
		"",
	}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q, want unchanged", v, got)
		}
	}
}

func TestColored_KeepsSuffix(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := Colored("1.2.3-beta")
	if got == "1.2.3-beta" {
		t.Fatalf("expected escape sequences in %q", got)
	}
	if len(got) < len("-beta") || got[len(got)-len("-beta"):] != "-beta" {
		t.Fatalf("suffix lost: %q", got)
	}
}
