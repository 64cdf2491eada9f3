package listennotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/shoko75/audioshelf/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "audioshelf/1.0"

	// Free-tier Listen API etiquette: at most a couple of requests per
	// second, with a small burst for startup.
	requestsPerSecond = 2
	requestBurst      = 2
)

// Client implements domain.CatalogSource against the Listen API
// best_podcasts endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	genreID    int
	region     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new Listen API catalog client.
func NewClient(baseURL, apiKey string, genreID int, region string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		genreID: genreID,
		region:  region,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  logger,
	}
}

// FetchPage fetches one 1-based page of the best-audiobooks chart.
// Every failure is returned as a classified *domain.FetchError.
func (c *Client) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	if page < 1 {
		return domain.Page{}, domain.NewBadRequestError(fmt.Sprintf("page must be positive, got %d", page), nil)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Page{}, classifyTransport(err)
	}

	reqURL, err := c.buildPageURL(page)
	if err != nil {
		return domain.Page{}, domain.NewBadRequestError("invalid base URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Page{}, domain.NewBadRequestError("request construction failed", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-ListenAPI-Key", c.apiKey)

	c.logger.Debug("catalog request", "page", page, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "page", page, "error", err)
		return domain.Page{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Page{}, domain.NewUnknownError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "page", page, "status", resp.StatusCode)
		return domain.Page{}, domain.NewServerError(resp.StatusCode)
	}

	var decoded bestPodcastsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.logger.Error("catalog parse error", "page", page, "error", err, "bodyLen", len(body))
		return domain.Page{}, domain.NewInvalidDataError("malformed response body", err)
	}

	books, err := mapPodcasts(decoded.Podcasts)
	if err != nil {
		c.logger.Error("catalog item invariant violated", "page", page, "error", err)
		return domain.Page{}, domain.NewInvalidDataError(err.Error(), err)
	}

	c.logger.Debug("catalog page fetched", "page", page, "count", len(books), "hasNext", decoded.HasNext)

	return domain.Page{Items: books, HasMoreHint: decoded.HasNext}, nil
}

func (c *Client) buildPageURL(page int) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	base = base.JoinPath("best_podcasts")

	query := url.Values{}
	query.Set("genre_id", strconv.Itoa(c.genreID))
	query.Set("page", strconv.Itoa(page))
	if c.region != "" {
		query.Set("region", c.region)
	}
	base.RawQuery = query.Encode()

	return base.String(), nil
}

// classifyTransport maps a transport-level error into the fetch taxonomy.
func classifyTransport(err error) *domain.FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.NewTimeoutError(err)
		}
		return domain.NewNoConnectivityError(err)
	}
	return domain.NewUnknownError(err)
}
