package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type Decision string

const (
	DecisionUpToDate Decision = "up-to-date" // Local version matches the latest release
	DecisionOutdated Decision = "outdated"   // A different (or newer) release is published
	DecisionAhead    Decision = "ahead"      // Local build is newer than the latest release
	DecisionUnknown  Decision = "unknown"    // Versions could not be compared
)

type Comparator string

const (
	ComparatorExact  Comparator = "exact"
	ComparatorSemver Comparator = "semver"
)

// ErrNotComparable is returned when a version is a dev placeholder or cannot
// be parsed by the selected comparator.
var ErrNotComparable = errors.New("version not comparable")

// ParseComparator maps a configuration value to a Comparator. The empty string
// selects ComparatorExact.
func ParseComparator(s string) (Comparator, error) {
	switch Comparator(strings.ToLower(strings.TrimSpace(s))) {
	case "", ComparatorExact:
		return ComparatorExact, nil
	case ComparatorSemver:
		return ComparatorSemver, nil
	default:
		return "", fmt.Errorf("unknown comparator %q (supported: exact, semver)", s)
	}
}

// FormatVersionDisplay formats a version string for display, adding "v" prefix
// when the version parses as semver. Dev placeholders and free-form tags are
// returned unchanged.
func FormatVersionDisplay(v string) string {
	if isDevVersion(v) || strings.HasPrefix(v, "v") {
		return v
	}
	if _, err := semver.NewVersion(v); err != nil {
		return v
	}
	return "v" + v
}

// Decide compares the locally packaged version with the latest published tag.
func Decide(current, latest string, c Comparator) (Decision, error) {
	cur := strings.TrimSpace(current)
	lat := strings.TrimSpace(latest)
	if lat == "" {
		return DecisionUnknown, fmt.Errorf("latest %w: empty tag", ErrNotComparable)
	}
	if isDevVersion(cur) {
		return DecisionUnknown, fmt.Errorf("current %w: %q", ErrNotComparable, current)
	}

	switch c {
	case "", ComparatorExact:
		if cur == lat {
			return DecisionUpToDate, nil
		}
		return DecisionOutdated, nil
	case ComparatorSemver:
		return decideSemver(cur, lat)
	default:
		return DecisionUnknown, fmt.Errorf("unknown comparator %q", c)
	}
}

func decideSemver(current, latest string) (Decision, error) {
	cv, err := semver.NewVersion(current)
	if err != nil {
		return DecisionUnknown, fmt.Errorf("current %w: %q: %v", ErrNotComparable, current, err)
	}
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return DecisionUnknown, fmt.Errorf("latest %w: %q: %v", ErrNotComparable, latest, err)
	}

	switch cv.Compare(lv) {
	case 0:
		return DecisionUpToDate, nil
	case -1:
		return DecisionOutdated, nil
	default:
		return DecisionAhead, nil
	}
}

// DescribeDecision returns a human-readable status.
func DescribeDecision(d Decision) string {
	switch d {
	case DecisionUpToDate:
		return "Up to date"
	case DecisionOutdated:
		return "Update available"
	case DecisionAhead:
		return "Ahead of latest release"
	case DecisionUnknown:
		return "Unknown (versions not comparable)"
	default:
		return string(d)
	}
}

func isDevVersion(v string) bool {
	return v == "" || v == "dev" || v == "0.0.0-dev"
}
