package jira

import (
	"context"
	"sort"
)

// Resolve fetches every key concurrently and returns the successful subset,
// keyed by issue key, plus the keys whose fetch failed (sorted for stable
// reporting).
//
// Partial failure is the expected steady state under flaky upstreams or
// deleted issues: one key's failure never cancels its siblings, it just
// leaves that key out of the result map. Only a credential problem, caught
// before fan-out, fails the call as a whole.
func (c *Client) Resolve(ctx context.Context, keys []string) (map[string]Issue, []string, error) {
	if err := c.org.validate(); err != nil {
		return nil, nil, err
	}

	type result struct {
		key   string
		issue *Issue
		err   error
	}

	results := make(chan result, len(keys))
	for _, key := range keys {
		go func(key string) {
			iss, err := c.Issue(ctx, key)
			results <- result{key: key, issue: iss, err: err}
		}(key)
	}

	resolved := make(map[string]Issue, len(keys))
	var failed []string
	for range keys {
		r := <-results
		if r.err != nil {
			failed = append(failed, r.key)
			continue
		}
		resolved[r.key] = *r.issue
	}
	sort.Strings(failed)

	return resolved, failed, nil
}
