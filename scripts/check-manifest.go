package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const defaultManifest = "scripts/testdata/manifest.json"

type manifestEntry struct {
	Plugin        string `json:"plugin"`
	Owner         string `json:"owner,omitempty"`
	ExpectCurrent bool   `json:"expectCurrent,omitempty"`
	Note          string `json:"note,omitempty"`
}

// checkResult mirrors the JSON printed by relcheck --json.
type checkResult struct {
	Plugin   string `json:"plugin"`
	Owner    string `json:"owner"`
	Current  string `json:"current"`
	Latest   string `json:"latest"`
	Decision string `json:"decision"`
	Error    string `json:"error"`
}

type result struct {
	Plugin string
	Status string
	Detail string
	Note   string
}

func main() {
	manifestPath := flag.String("manifest", "", "path to plugin manifest (default $RELCHECK_MANIFEST or "+defaultManifest+")")
	binFlag := flag.String("relcheck-bin", "", "path to relcheck binary to run")
	strict := flag.Bool("strict", false, "exit non-zero when any plugin is outdated or fails its expectation")
	flag.Parse()

	manifest := resolveManifestPath(*manifestPath)
	bin := firstSet(*binFlag, os.Getenv("RELCHECK_BIN"), "relcheck")

	entries, err := loadManifest(manifest)
	if err != nil {
		fatalf("load manifest: %v", err)
	}
	if err := validateEntries(entries); err != nil {
		fatalf("manifest validation failed: %v", err)
	}

	var failures int
	for _, e := range entries {
		res := runEntry(e, bin)
		fmt.Printf("[%s] %s %s", strings.ToUpper(res.Status), res.Plugin, res.Detail)
		if res.Note != "" {
			fmt.Printf(" note=%s", res.Note)
		}
		fmt.Println()
		if res.Status != "pass" {
			failures++
		}
	}

	if *strict && failures > 0 {
		os.Exit(1)
	}
}

func runEntry(e manifestEntry, bin string) result {
	args := []string{"--json", e.Plugin}
	out, err := exec.Command(bin, args...).Output()
	if err != nil {
		return result{Plugin: e.Plugin, Status: "error", Detail: err.Error(), Note: e.Note}
	}

	var cr checkResult
	if err := json.Unmarshal(out, &cr); err != nil {
		return result{Plugin: e.Plugin, Status: "error", Detail: "decode output: " + err.Error(), Note: e.Note}
	}
	if e.Owner != "" && cr.Owner != e.Owner {
		return result{Plugin: e.Plugin, Status: "error", Detail: fmt.Sprintf("owner=%s want %s", cr.Owner, e.Owner), Note: e.Note}
	}
	return classify(e, cr)
}

func classify(e manifestEntry, cr checkResult) result {
	res := result{Plugin: e.Plugin, Note: e.Note}
	switch {
	case cr.Error != "":
		res.Status = "error"
		res.Detail = cr.Error
	case cr.Decision == "outdated":
		res.Status = "outdated"
		res.Detail = fmt.Sprintf("current=%s latest=%s", cr.Current, cr.Latest)
	default:
		res.Status = "pass"
		res.Detail = fmt.Sprintf("current=%s latest=%s decision=%s", cr.Current, cr.Latest, cr.Decision)
	}
	if e.ExpectCurrent && res.Status == "pass" && cr.Decision != "up-to-date" {
		res.Status = "error"
		res.Detail += " (expected up-to-date)"
	}
	return res
}

func resolveManifestPath(flagValue string) string {
	return firstSet(flagValue, os.Getenv("RELCHECK_MANIFEST"), defaultManifest)
}

func loadManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path) // #nosec G304 -- developer-supplied manifest path
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file, close error non-critical

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func validateEntries(entries []manifestEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Plugin)
		if name == "" {
			return fmt.Errorf("entry %d: plugin is required", i)
		}
		if seen[name] {
			return fmt.Errorf("entry %d: duplicate plugin %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
