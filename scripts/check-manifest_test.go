package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	entries, err := loadManifest("testdata/manifest.json")
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d want 2", len(entries))
	}
	if err := validateEntries(entries); err != nil {
		t.Fatalf("validateEntries: %v", err)
	}
	if !entries[1].ExpectCurrent || entries[1].Owner != "Traqueur-dev" {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
}

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []manifestEntry
		wantErr bool
	}{
		{"ok", []manifestEntry{{Plugin: "a"}, {Plugin: "b"}}, false},
		{"blank plugin", []manifestEntry{{Plugin: " "}}, true},
		{"duplicate", []manifestEntry{{Plugin: "a"}, {Plugin: "a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntries(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateEntries err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		entry manifestEntry
		res   checkResult
		want  string
	}{
		{"up to date", manifestEntry{Plugin: "a"}, checkResult{Decision: "up-to-date"}, "pass"},
		{"outdated reported", manifestEntry{Plugin: "RecipesAPI"}, checkResult{Decision: "outdated"}, "outdated"},
		{"outdated expected current", manifestEntry{Plugin: "a", ExpectCurrent: true}, checkResult{Decision: "outdated"}, "outdated"},
		{"ahead tolerated", manifestEntry{Plugin: "a"}, checkResult{Decision: "ahead"}, "pass"},
		{"ahead expected current", manifestEntry{Plugin: "a", ExpectCurrent: true}, checkResult{Decision: "ahead"}, "error"},
		{"current as expected", manifestEntry{Plugin: "a", ExpectCurrent: true}, checkResult{Decision: "up-to-date"}, "pass"},
		{"swallowed error", manifestEntry{Plugin: "a"}, checkResult{Decision: "unknown", Error: "release not found"}, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.entry, tt.res).Status; got != tt.want {
				t.Fatalf("status: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestLoadManifestRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"plugin":"a"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadManifest(path); err == nil {
		t.Fatal("expected error for non-array manifest")
	}
}

func TestResolveManifestPath(t *testing.T) {
	t.Setenv("RELCHECK_MANIFEST", "")
	if got := resolveManifestPath(""); got != defaultManifest {
		t.Fatalf("default: got %q want %q", got, defaultManifest)
	}

	t.Setenv("RELCHECK_MANIFEST", "/other.json")
	if got := resolveManifestPath(""); got != "/other.json" {
		t.Fatalf("env: got %q want /other.json", got)
	}
	if got := resolveManifestPath("flag.json"); got != "flag.json" {
		t.Fatalf("flag: got %q want flag.json", got)
	}
}
