package model

import "time"

// Release is the subset of the GitHub release payload that relcheck uses.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// VersionInfo contains build-time metadata about the relcheck binary.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
