// Package github posts the finished summary as a PR comment. This is the
// one step with no fallback delivery channel, so transport failures surface
// as hard errors instead of degrading.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prbrief/internal/config"
)

const defaultBaseURL = "https://api.github.com"

type Poster struct {
	client  *http.Client
	baseURL string
	gh      config.GitHub
}

type Option func(*Poster)

// WithBaseURL points the poster at a different API host, e.g. a test server
// or a GitHub Enterprise instance.
func WithBaseURL(url string) Option {
	return func(p *Poster) { p.baseURL = strings.TrimRight(url, "/") }
}

// NewPoster validates the GitHub configuration before anything else; a
// missing owner, repo, PR id, or token is a hard error raised here, never
// after a network attempt.
func NewPoster(gh config.GitHub, opts ...Option) (*Poster, error) {
	if err := gh.Validate(); err != nil {
		return nil, err
	}
	p := &Poster{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		gh:      gh,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type commentRequest struct {
	Body string `json:"body"`
}

type commentResponse struct {
	HTMLURL string `json:"html_url"`
}

// PostComment creates an issue comment on the configured PR and returns the
// comment's URL.
func (p *Poster) PostComment(ctx context.Context, summary string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%s/comments", p.baseURL, p.gh.Owner, p.gh.Repo, p.gh.PRID)

	body, err := json.Marshal(commentRequest{Body: summary})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+p.gh.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post comment: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("post comment failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed commentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse comment response: %w", err)
	}
	return parsed.HTMLURL, nil
}
