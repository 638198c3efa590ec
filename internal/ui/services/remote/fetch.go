package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 8 << 20

// Fetcher performs one logical remote search
type Fetcher interface {
	Search(ctx context.Context, baseURL, term string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, baseURL, term string) ([]byte, error)

// Search calls f
func (f FetcherFunc) Search(ctx context.Context, baseURL, term string) ([]byte, error) {
	return f(ctx, baseURL, term)
}

// HTTPFetcher issues GET requests with the term as a query parameter.
// Each hook may be replaced to customise the request.
type HTTPFetcher struct {
	Client    *http.Client
	TermParam string

	// URLParams returns the query parameters for term
	URLParams func(term string) url.Values
	// BuildURL merges params into base; every key in params replaces the base's values
	BuildURL func(base string, params url.Values) (string, error)
	// BuildRequest creates the request for the final URL
	BuildRequest func(ctx context.Context, u, term string) (*http.Request, error)
}

// NewHTTPFetcher creates a fetcher sending the term as termParam
func NewHTTPFetcher(termParam string, timeout time.Duration) *HTTPFetcher {
	if termParam == "" {
		termParam = "term"
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		TermParam: termParam,
	}
}

// Search implements Fetcher
func (f *HTTPFetcher) Search(ctx context.Context, baseURL, term string) ([]byte, error) {
	params := f.params(term)
	build := f.BuildURL
	if build == nil {
		build = BuildURL
	}
	u, err := build(baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	newReq := f.BuildRequest
	if newReq == nil {
		newReq = defaultRequest
	}
	req, err := newReq(ctx, u, term)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (f *HTTPFetcher) params(term string) url.Values {
	if f.URLParams != nil {
		return f.URLParams(term)
	}
	name := f.TermParam
	if name == "" {
		name = "term"
	}
	return url.Values{name: []string{term}}
}

// BuildURL merges params into the query string of base
func BuildURL(base string, params url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range params {
		q.Del(k)
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func defaultRequest(ctx context.Context, u, _ string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
