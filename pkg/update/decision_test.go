package update

import (
	"errors"
	"strings"
	"testing"
)

func TestDecideExact(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    Decision
	}{
		{"identical tags", "1.2.0", "1.2.0", DecisionUpToDate},
		{"whitespace ignored", "1.2.0\n", " 1.2.0", DecisionUpToDate},
		{"newer remote", "1.2.0", "1.3.0", DecisionOutdated},
		{"prefix differs", "1.2.0", "v1.2.0", DecisionOutdated},
		{"older remote still differs", "1.3.0", "1.2.0", DecisionOutdated},
		{"free-form tags", "release-7", "release-8", DecisionOutdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.current, tt.latest, ComparatorExact)
			if err != nil {
				t.Fatalf("Decide(%q, %q) unexpected error: %v", tt.current, tt.latest, err)
			}
			if got != tt.want {
				t.Fatalf("Decide(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestDecideSemver(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    Decision
		wantErr bool
	}{
		{"prefix ignored", "1.2.0", "v1.2.0", DecisionUpToDate, false},
		{"short form equal", "1.2", "v1.2.0", DecisionUpToDate, false},
		{"patch behind", "1.2.0", "v1.2.1", DecisionOutdated, false},
		{"major behind", "1.9.9", "v2.0.0", DecisionOutdated, false},
		{"prerelease behind final", "1.2.0-rc1", "v1.2.0", DecisionOutdated, false},
		{"local ahead", "1.3.0", "v1.2.0", DecisionAhead, false},
		{"build metadata ignored", "1.2.0+abc", "v1.2.0", DecisionUpToDate, false},

		{"unparseable latest", "1.2.0", "nightly", DecisionUnknown, true},
		{"unparseable current", "snapshot", "v1.2.0", DecisionUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.current, tt.latest, ComparatorSemver)
			if tt.wantErr {
				if !errors.Is(err, ErrNotComparable) {
					t.Fatalf("Decide(%q, %q) err = %v, want ErrNotComparable", tt.current, tt.latest, err)
				}
			} else if err != nil {
				t.Fatalf("Decide(%q, %q) unexpected error: %v", tt.current, tt.latest, err)
			}
			if got != tt.want {
				t.Fatalf("Decide(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestDecideNotComparable(t *testing.T) {
	tests := []struct {
		current string
		latest  string
	}{
		{"dev", "v1.0.0"},
		{"0.0.0-dev", "v1.0.0"},
		{"", "v1.0.0"},
		{"1.0.0", ""},
	}

	for _, tt := range tests {
		for _, c := range []Comparator{ComparatorExact, ComparatorSemver} {
			got, err := Decide(tt.current, tt.latest, c)
			if !errors.Is(err, ErrNotComparable) {
				t.Fatalf("Decide(%q, %q, %s) err = %v, want ErrNotComparable", tt.current, tt.latest, c, err)
			}
			if got != DecisionUnknown {
				t.Fatalf("Decide(%q, %q, %s) = %v, want unknown", tt.current, tt.latest, c, got)
			}
		}
	}
}

func TestParseComparator(t *testing.T) {
	tests := []struct {
		input   string
		want    Comparator
		wantErr bool
	}{
		{"", ComparatorExact, false},
		{"exact", ComparatorExact, false},
		{" SemVer ", ComparatorSemver, false},
		{"lexical", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseComparator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseComparator(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseComparator(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatVersionDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0.2.5", "v0.2.5"},
		{"v0.2.5", "v0.2.5"},
		{"dev", "dev"},
		{"", ""},
		{"0.0.0-dev", "0.0.0-dev"},
		{"release-7", "release-7"},
		{"1.2", "v1.2"},
		{"1.2.0-rc.1", "v1.2.0-rc.1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatVersionDisplay(tt.input)
			if got != tt.want {
				t.Fatalf("FormatVersionDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDescribeDecision(t *testing.T) {
	tests := []struct {
		decision     Decision
		wantContains string
	}{
		{DecisionUpToDate, "up to date"},
		{DecisionOutdated, "available"},
		{DecisionAhead, "ahead"},
		{DecisionUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			got := DescribeDecision(tt.decision)
			if !strings.Contains(strings.ToLower(got), strings.ToLower(tt.wantContains)) {
				t.Fatalf("DescribeDecision(%v) = %q, want to contain %q", tt.decision, got, tt.wantContains)
			}
		})
	}
}
