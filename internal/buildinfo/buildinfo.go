// Package buildinfo exposes the version metadata packaged with the binary.
//
// The authoritative source is the embedded version.properties resource. Release
// builds may also stamp Version, Commit and Date through -ldflags -X; a stamped
// Version other than "dev" takes precedence over the embedded file.
package buildinfo

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/magiconair/properties"

	"github.com/3leaps/relcheck/internal/model"
)

//go:embed version.properties
var embeddedProperties []byte

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// ErrMissingVersion is returned when the properties document has no usable
// version entry.
var ErrMissingVersion = errors.New("version entry missing")

// Info is the parsed content of a version.properties document.
type Info struct {
	Name    string
	Version string
	Commit  string
	Date    string
}

var (
	embeddedOnce sync.Once
	embedded     Info
	embeddedErr  error
)

// Load parses a properties document. The version key is required.
func Load(data []byte) (Info, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return Info{}, fmt.Errorf("parse version properties: %w", err)
	}
	info := Info{
		Name:    strings.TrimSpace(p.GetString("name", "")),
		Version: strings.TrimSpace(p.GetString("version", "")),
		Commit:  strings.TrimSpace(p.GetString("commit", "")),
		Date:    strings.TrimSpace(p.GetString("date", "")),
	}
	if info.Version == "" {
		return Info{}, ErrMissingVersion
	}
	return info, nil
}

// Embedded returns the packaged metadata with link-time overrides applied.
func Embedded() (Info, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Load(embeddedProperties)
	})
	if embeddedErr != nil && !stamped() {
		return Info{}, embeddedErr
	}
	info := embedded
	if stamped() {
		info.Version = strings.TrimSpace(Version)
	}
	if Commit != "none" || info.Commit == "" {
		info.Commit = Commit
	}
	if Date != "unknown" || info.Date == "" {
		info.Date = Date
	}
	return info, nil
}

// ReadVersion returns the locally packaged version string.
func ReadVersion() (string, error) {
	info, err := Embedded()
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

// VersionInfo returns the metadata printed by --version. It never fails; an
// unreadable resource falls back to the link-time values.
func VersionInfo() model.VersionInfo {
	info, err := Embedded()
	if err != nil {
		return model.VersionInfo{Version: Version, Commit: Commit, Date: Date}
	}
	return model.VersionInfo{Version: info.Version, Commit: info.Commit, Date: info.Date}
}

func stamped() bool {
	v := strings.TrimSpace(Version)
	return v != "" && v != "dev"
}
