package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"kursapi/internal/domain"
)

// RatePageClient fetches the raw HTML of the published rate page. Any network
// or HTTP-status failure surfaces as domain.ErrFetchFailed; retries are the
// caller's policy, not this client's.
type RatePageClient struct {
	http    *http.Client
	pageURL string
}

func (c *RatePageClient) FetchRateTable(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrFetchFailed, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrFetchFailed, err)
	}
	return body, nil
}

func NewRatePageClient(httpClient *http.Client, pageURL string) *RatePageClient {
	return &RatePageClient{http: httpClient, pageURL: pageURL}
}
