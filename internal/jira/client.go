package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 30 * time.Second

// Auth schemes selectable per organization.
const (
	AuthBasic  = "basic"  // Authorization: Basic base64(account:token)
	AuthBearer = "bearer" // Authorization: Bearer token
)

// ErrMissingCredentials indicates the org context lacks an endpoint, token,
// or account identifier. No network calls are made in that case.
var ErrMissingCredentials = errors.New("jira credentials are not configured")

// Org is the bundle of endpoint and auth settings for one target
// organization. Two of these are typically configured; the caller picks one.
type Org struct {
	BaseURL    string
	APIVersion string
	AuthType   string
	Account    string
	Token      string
}

// validate checks that everything needed for a request is present.
func (o Org) validate() error {
	if strings.TrimSpace(o.BaseURL) == "" ||
		strings.TrimSpace(o.Token) == "" ||
		strings.TrimSpace(o.Account) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Client issues requests against one organization's REST API.
type Client struct {
	org        Org
	httpClient *http.Client
}

// ClientOptions controls client construction.
type ClientOptions struct {
	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client
}

// NewClient creates a client for the given org context. The org is not
// validated here; Issue/Search/Resolve validate before any network call.
func NewClient(org Org, opts *ClientOptions) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	if opts != nil && opts.HTTPClient != nil {
		httpClient = opts.HTTPClient
	}
	if org.APIVersion == "" {
		org.APIVersion = "2"
	}
	return &Client{org: org, httpClient: httpClient}
}

// Org returns the org context this client targets.
func (c *Client) Org() Org {
	return c.org
}

// Issue fetches and normalizes a single issue by key.
func (c *Client) Issue(ctx context.Context, key string) (*Issue, error) {
	if err := c.org.validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/rest/api/%s/issue/%s",
		strings.TrimRight(c.org.BaseURL, "/"), c.org.APIVersion, url.PathEscape(key))

	var raw issuePayload
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetch issue %s: %w", key, err)
	}

	iss := normalize(raw, c.org.BaseURL)
	return &iss, nil
}

// Search runs a JQL query and normalizes the returned issues.
func (c *Client) Search(ctx context.Context, jql string) ([]Issue, error) {
	if err := c.org.validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/rest/api/%s/search?jql=%s",
		strings.TrimRight(c.org.BaseURL, "/"), c.org.APIVersion, url.QueryEscape(jql))

	var raw searchPayload
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	issues := make([]Issue, 0, len(raw.Issues))
	for _, p := range raw.Issues {
		issues = append(issues, normalize(p, c.org.BaseURL))
	}
	return issues, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) authHeader() string {
	if c.org.AuthType == AuthBearer {
		return "Bearer " + c.org.Token
	}
	cred := c.org.Account + ":" + c.org.Token
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))
}
