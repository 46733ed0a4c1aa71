// Package update checks GitHub releases for a newer barkit version.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultReleasesURL is the GitHub API endpoint for the latest release.
const DefaultReleasesURL = "https://api.github.com/repos/barkit-dev/barkit/releases/latest"

// Release describes the latest published release.
type Release struct {
	Version string `json:"tag_name"`
	Name    string `json:"name"`
	URL     string `json:"html_url"`
}

// Checker queries the releases API.
type Checker struct {
	client *retryablehttp.Client
	url    string
}

// NewChecker creates a checker. An empty url uses DefaultReleasesURL.
func NewChecker(url string) *Checker {
	if url == "" {
		url = DefaultReleasesURL
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil

	return &Checker{client: client, url: url}
}

// Check returns the latest release and whether it is newer than current.
func (c *Checker) Check(ctx context.Context, current string) (*Release, bool, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "barkit")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query releases: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("release query failed: HTTP %d", resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, false, fmt.Errorf("failed to decode release: %w", err)
	}

	latest, err := semver.NewVersion(strings.TrimPrefix(rel.Version, "v"))
	if err != nil {
		return nil, false, fmt.Errorf("release tag %q is not semver: %w", rel.Version, err)
	}
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return nil, false, fmt.Errorf("current version %q is not semver: %w", current, err)
	}

	return &rel, cur.LessThan(latest), nil
}
