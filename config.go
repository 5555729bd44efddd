package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

type cliConfig struct {
	Plugin  string
	JSON    bool
	Verbose bool
	Version bool
}

func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	var cfg cliConfig

	fs := pflag.NewFlagSet("relcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relcheck [flags] [PLUGIN]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Checks whether PLUGIN is on its latest published GitHub release.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	fs.StringVarP(&cfg.Plugin, "plugin", "p", "", "plugin (GitHub repository) name to check")
	fs.BoolVar(&cfg.JSON, "json", false, "print the result as JSON")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "log debug details, including swallowed errors")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "print version")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Version {
		return cfg, nil
	}

	rest := fs.Args()
	switch {
	case cfg.Plugin != "" && len(rest) > 0:
		return cfg, fmt.Errorf("%w: plugin given both as --plugin and argument", errUsage)
	case len(rest) > 1:
		return cfg, fmt.Errorf("%w: expected one plugin, got %d", errUsage, len(rest))
	case len(rest) == 1:
		cfg.Plugin = rest[0]
	}
	cfg.Plugin = strings.TrimSpace(cfg.Plugin)
	if cfg.Plugin == "" {
		return cfg, fmt.Errorf("%w: plugin name is required", errUsage)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
