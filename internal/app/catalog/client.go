package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// Client fetches the structured catalog snapshot for one academic year.
type Client interface {
	FetchCatalog(ctx context.Context, year int) ([]CourseRecord, error)
}

// HTTPClient is the Client implementation backed by the catalog parser
// service's HTTP API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient creates a catalog client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchCatalog retrieves all course records for a year. A year the
// source knows nothing about yields apperrors.ErrNoCourseData.
func (c *HTTPClient) FetchCatalog(ctx context.Context, year int) ([]CourseRecord, error) {
	url := c.baseURL + "/catalog/" + strconv.Itoa(year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.ErrNoCourseData
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}

	var records []CourseRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(records) == 0 {
		return nil, apperrors.ErrNoCourseData
	}

	c.logger.Debug().Int("year", year).Int("count", len(records)).Msg("Catalog snapshot fetched")
	return records, nil
}
