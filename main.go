package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"

	"github.com/3leaps/relcheck/internal/buildinfo"
	"github.com/3leaps/relcheck/internal/updater"
	"github.com/3leaps/relcheck/pkg/update"
)

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if cfg.Version {
		info := buildinfo.VersionInfo()
		fmt.Fprintf(stdout, "relcheck %s (%s, %s)\n", info.Version, info.Commit, info.Date)
		return 0
	}

	logger := newLogger(stderr, cfg.Verbose)
	checker, err := updater.New(cfg.Plugin, updater.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := checker.Run(ctx)

	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "error: encoding result: %v\n", err)
			return 1
		}
		return 0
	}

	renderResult(stdout, res)
	return 0
}

func renderResult(w io.Writer, res updater.Result) {
	latest := res.Latest
	if latest == "" {
		latest = "-"
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Plugin", "Current", "Latest", "Status"})
	tw.AppendRow(table.Row{
		res.Owner + "/" + res.Plugin,
		update.FormatVersionDisplay(res.Current),
		update.FormatVersionDisplay(latest),
		update.DescribeDecision(res.Decision),
	})
	tw.Render()

	if res.Decision == update.DecisionOutdated && res.ReleaseURL != "" {
		fmt.Fprintf(w, "Release notes: %s\n", res.ReleaseURL)
	}
}
