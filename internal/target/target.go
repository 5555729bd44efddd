// Package target loads the packaged description of where releases are
// published. The document is embedded at build time and checked against an
// embedded JSON Schema before use.
package target

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/3leaps/relcheck/pkg/update"
)

const schemaURL = "https://schemas.3leaps.dev/relcheck/target.schema.json"

//go:embed configs/target.json
var embeddedTargetJSON []byte

//go:embed configs/target.schema.json
var embeddedSchemaJSON []byte

type Source struct {
	Type    string `json:"type"`
	APIBase string `json:"apiBase,omitempty"`
}

type Repo struct {
	Owner string `json:"owner"`
}

type Versioning struct {
	Comparator string `json:"comparator,omitempty"`
}

type Config struct {
	Schema     string     `json:"schema"`
	Version    int        `json:"version"`
	Source     Source     `json:"source"`
	Repo       Repo       `json:"repo"`
	Versioning Versioning `json:"versioning,omitempty"`
}

// Comparator returns the configured comparator. Validate guarantees it parses.
func (c *Config) Comparator() update.Comparator {
	cmp, err := update.ParseComparator(c.Versioning.Comparator)
	if err != nil {
		return update.ComparatorExact
	}
	return cmp
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	embeddedOnce sync.Once
	embedded     *Config
	embeddedErr  error
)

// Embedded returns the packaged target, parsed and validated once.
func Embedded() (*Config, error) {
	embeddedOnce.Do(func() {
		if len(embeddedTargetJSON) == 0 {
			embeddedErr = errors.New("embedded update target config is empty")
			return
		}
		embedded, embeddedErr = Parse(embeddedTargetJSON)
	})
	return embedded, embeddedErr
}

// Parse validates data against the target schema, decodes it and applies the
// semantic checks.
func Parse(data []byte) (*Config, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse update target config: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("update target config failed schema validation: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse update target config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every semantic problem in one error.
func Validate(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.Schema) == "" {
		problems = append(problems, "schema: missing")
	}
	if cfg.Version < 1 {
		problems = append(problems, fmt.Sprintf("version: must be >= 1 (got %d)", cfg.Version))
	}
	if cfg.Source.Type != "github" {
		problems = append(problems, fmt.Sprintf("source.type: unsupported %q (supported: github)", cfg.Source.Type))
	}
	if strings.TrimSpace(cfg.Repo.Owner) == "" {
		problems = append(problems, "repo.owner: missing")
	}
	if _, err := update.ParseComparator(cfg.Versioning.Comparator); err != nil {
		problems = append(problems, "versioning.comparator: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid update target config:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(embeddedSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse update target schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("load update target schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}
