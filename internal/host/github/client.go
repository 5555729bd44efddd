package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/3leaps/relcheck/internal/model"
)

const (
	DefaultAPIBase = "https://api.github.com"
	EnvAPIBase     = "RELCHECK_API_BASE"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
	maxErrorBody   = 512
)

var (
	ErrReleaseNotFound = errors.New("release not found")
	ErrRateLimited     = errors.New("github api rate limit exceeded")
	ErrMissingTag      = errors.New("release payload has no tag_name")
)

// StatusError reports an unexpected HTTP status from the release API.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("RELCHECK_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// APIBaseFromEnv returns RELCHECK_API_BASE without a trailing slash, or the
// public GitHub API when unset.
func APIBaseFromEnv() string {
	if !HasAPIBaseOverride() {
		return DefaultAPIBase
	}
	return strings.TrimRight(strings.TrimSpace(os.Getenv(EnvAPIBase)), "/")
}

// HasAPIBaseOverride reports whether RELCHECK_API_BASE is set.
func HasAPIBaseOverride() bool {
	return strings.TrimSpace(os.Getenv(EnvAPIBase)) != ""
}

func UserAgent(version string) string {
	return fmt.Sprintf("relcheck/%s", version)
}

// LatestReleaseURL renders <base>/repos/<owner>/<repo>/releases/latest.
func LatestReleaseURL(base, owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(base, "/"), url.PathEscape(owner), url.PathEscape(repo))
}

// Client fetches release metadata from the GitHub REST API.
type Client struct {
	apiBase   string
	userAgent string
	token     string
	http      *http.Client
}

type Option func(*Client)

func WithAPIBase(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.apiBase = strings.TrimRight(base, "/")
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient returns a client configured from the environment; options override
// the environment.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiBase:   APIBaseFromEnv(),
		userAgent: UserAgent("dev"),
		token:     TokenFromEnv(),
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIBase returns the API root requests are sent to, without a trailing slash.
func (c *Client) APIBase() string {
	return c.apiBase
}

// Get issues an authenticated GET. The token is only sent to GitHub hosts.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" && isGitHubHost(req.URL.Hostname()) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

// FetchLatestRelease returns the latest published release of owner/repo.
func (c *Client) FetchLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	endpoint := LatestReleaseURL(c.apiBase, owner, repo)

	// #nosec G107 -- endpoint built from escaped owner/repo
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(endpoint, resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rel model.Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	rel.TagName = strings.TrimSpace(rel.TagName)
	if rel.TagName == "" {
		return nil, ErrMissingTag
	}
	return &rel, nil
}

func statusError(endpoint string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", endpoint, ErrReleaseNotFound)
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return fmt.Errorf("%s: %w", endpoint, ErrRateLimited)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func isGitHubHost(host string) bool {
	host = strings.ToLower(host)
	return host == "github.com" || strings.HasSuffix(host, ".github.com")
}
