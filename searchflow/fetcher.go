package searchflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher runs one search against the backend.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]ResultRecord, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, query string) ([]ResultRecord, error)

func (f FetcherFunc) Fetch(ctx context.Context, query string) ([]ResultRecord, error) {
	return f(ctx, query)
}

// StatusError is returned for non-2xx search responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("search failed with status %d: %s", e.StatusCode, e.Body)
}

// HTTPFetcher calls GET {baseURL}/api/getSearch?q=<query>.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, query string) ([]ResultRecord, error) {
	if query == "" {
		return []ResultRecord{}, nil
	}

	endpoint := f.baseURL + "/api/getSearch?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}

	return decodeResults(body)
}

func decodeResults(body []byte) ([]ResultRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []ResultRecord{}, nil
	}

	var records []ResultRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if records == nil {
		records = []ResultRecord{}
	}
	return records, nil
}
