// Package updater checks whether the packaged version is the latest published
// release and warns when it is not.
//
// The check is best effort: any failure while reading the local version,
// fetching the release or comparing the two is logged at debug level and the
// plugin is treated as up to date. Nothing is ever downloaded or installed.
package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/3leaps/relcheck/internal/buildinfo"
	gh "github.com/3leaps/relcheck/internal/host/github"
	"github.com/3leaps/relcheck/internal/model"
	"github.com/3leaps/relcheck/internal/target"
	"github.com/3leaps/relcheck/pkg/update"
)

const outdatedFormat = "The framework is not up to date, the latest version is %s"

// ErrEmptyName is returned by New for a blank plugin name.
var ErrEmptyName = errors.New("plugin name is required")

// readVersion is swapped in tests.
var readVersion = buildinfo.ReadVersion

// ReleaseFetcher returns the latest published release of owner/repo.
type ReleaseFetcher interface {
	FetchLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error)
}

// Result is the outcome of one check.
type Result struct {
	Plugin     string          `json:"plugin"`
	Owner      string          `json:"owner"`
	Current    string          `json:"current"`
	Latest     string          `json:"latest,omitempty"`
	ReleaseURL string          `json:"releaseUrl,omitempty"`
	Decision   update.Decision `json:"decision"`
	Error      string          `json:"error,omitempty"`
}

// UpToDate reports whether no warning is due. Failed checks count as up to date.
func (r Result) UpToDate() bool {
	return r.Decision != update.DecisionOutdated
}

// Checker checks one plugin against its latest GitHub release.
type Checker struct {
	name       string
	owner      string
	current    string
	comparator update.Comparator
	client     ReleaseFetcher
	logger     *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger; the plugin attribute is added by New.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClient replaces the GitHub client used to fetch releases.
func WithClient(f ReleaseFetcher) Option {
	return func(c *Checker) {
		if f != nil {
			c.client = f
		}
	}
}

// WithCurrentVersion bypasses the packaged version.properties.
func WithCurrentVersion(v string) Option {
	return func(c *Checker) { c.current = strings.TrimSpace(v) }
}

// WithOwner overrides the repository owner from the packaged target.
func WithOwner(owner string) Option {
	return func(c *Checker) {
		if owner = strings.TrimSpace(owner); owner != "" {
			c.owner = owner
		}
	}
}

// WithComparator overrides the comparator from the packaged target.
func WithComparator(cmp update.Comparator) Option {
	return func(c *Checker) {
		if cmp != "" {
			c.comparator = cmp
		}
	}
}

// New returns a Checker for the named plugin. Owner, comparator and API base
// default to the packaged update target.
func New(name string, opts ...Option) (*Checker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	cfg, err := target.Embedded()
	if err != nil {
		return nil, err
	}

	c := &Checker{
		name:       name,
		owner:      cfg.Repo.Owner,
		comparator: cfg.Comparator(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("plugin", name)

	if c.client == nil {
		c.client = defaultClient(cfg)
	}
	return c, nil
}

func defaultClient(cfg *target.Config) *gh.Client {
	opts := []gh.Option{gh.WithUserAgent(gh.UserAgent(buildinfo.VersionInfo().Version))}
	if !gh.HasAPIBaseOverride() {
		opts = append(opts, gh.WithAPIBase(cfg.Source.APIBase))
	}
	return gh.NewClient(opts...)
}

// Update runs a one-shot best-effort check for name using the default logger.
func Update(name string) {
	c, err := New(name)
	if err != nil {
		slog.Debug("update check skipped", "plugin", name, "error", err)
		return
	}
	c.CheckForUpdate(context.Background())
}

// CheckForUpdate logs a warning when a newer release is published. Errors are
// swallowed.
func (c *Checker) CheckForUpdate(ctx context.Context) {
	c.Run(ctx)
}

// Run performs the check, logs the outcome and returns it. A failed check is
// reported in Result.Error with DecisionUnknown and never produces a warning.
func (c *Checker) Run(ctx context.Context) Result {
	res, err := c.Check(ctx)
	if err != nil {
		res.Decision = update.DecisionUnknown
		res.Error = err.Error()
		c.logger.Debug("update check skipped", "error", err)
		return res
	}

	switch res.Decision {
	case update.DecisionOutdated:
		c.logger.Warn(fmt.Sprintf(outdatedFormat, res.Latest), "current", res.Current)
	default:
		c.logger.Debug("update check complete", "decision", string(res.Decision), "latest", res.Latest)
	}
	return res
}

// Check fetches the latest release and compares it with the current version.
// Unlike CheckForUpdate it surfaces every error.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	res := Result{Plugin: c.name, Owner: c.owner, Decision: update.DecisionUnknown}

	current := c.current
	if current == "" {
		v, err := readVersion()
		if err != nil {
			return res, fmt.Errorf("read local version: %w", err)
		}
		current = v
	}
	res.Current = current

	rel, err := c.client.FetchLatestRelease(ctx, c.owner, c.name)
	if err != nil {
		return res, fmt.Errorf("fetch latest release of %s/%s: %w", c.owner, c.name, err)
	}
	if rel == nil {
		return res, fmt.Errorf("fetch latest release of %s/%s: %w", c.owner, c.name, gh.ErrMissingTag)
	}
	res.Latest = rel.TagName
	res.ReleaseURL = rel.HTMLURL

	decision, err := update.Decide(current, rel.TagName, c.comparator)
	if err != nil {
		return res, err
	}
	res.Decision = decision
	return res, nil
}
