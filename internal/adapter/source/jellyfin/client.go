package jellyfin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/kinoart/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
)

// itemFields are the optional BaseItemDto fields artwork selection needs
const itemFields = "PrimaryImageAspectRatio,ChildCount,Overview,ParentId,MediaType"

// imageTypes limits the image tags returned to the types artwork selection reads
const imageTypes = "Primary,Backdrop,Banner,Thumb,Logo,Art"

// Client implements domain.ItemRepository for Jellyfin
type Client struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewClient creates a new Jellyfin API client
func NewClient(baseURL, token, userID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:     logger,
		retryDelay: baseRetryDelay,
	}
}

// BaseURL returns the server base URL image requests are built against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated HTTP request to the Jellyfin API.
// Server errors (5xx) are retried with exponential backoff.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "path", path)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Emby-Authorization", buildAuthHeader(c.token))

		c.logger.Debug("jellyfin request", "method", method, "path", path, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("jellyfin request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domain.ErrAuthFailed
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrItemNotFound
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d - %s", resp.StatusCode, string(body))
			c.logger.Warn("jellyfin server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
			)
			continue
		case resp.StatusCode != http.StatusOK:
			c.logger.Error("jellyfin request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("jellyfin request failed after retries", "error", lastErr, "path", path)
	return nil, lastErr
}

func (c *Client) getItems(ctx context.Context, path string, query url.Values) ([]*domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}

	var resp ItemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return MapItems(resp.Items), nil
}

func listQuery() url.Values {
	query := url.Values{}
	query.Set("Fields", itemFields)
	// No ImageTypeLimit: it would truncate BackdropImageTags to one entry
	query.Set("EnableImageTypes", imageTypes)
	return query
}

// GetViews returns the user's libraries
func (c *Client) GetViews(ctx context.Context) ([]*domain.Item, error) {
	return c.getItems(ctx, fmt.Sprintf("/Users/%s/Views", c.userID), listQuery())
}

// GetChildren returns the direct children of an item, sorted by name
func (c *Client) GetChildren(ctx context.Context, parentID string) ([]*domain.Item, error) {
	query := listQuery()
	query.Set("ParentId", parentID)
	query.Set("SortBy", "IsFolder,SortName")
	query.Set("SortOrder", "Ascending")
	return c.getItems(ctx, fmt.Sprintf("/Users/%s/Items", c.userID), query)
}

// GetItem returns a single item including its cast and crew
func (c *Client) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	path := fmt.Sprintf("/Users/%s/Items/%s", c.userID, url.PathEscape(itemID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var it Item
	if err := json.Unmarshal(body, &it); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if it.ID == "" {
		return nil, domain.ErrItemNotFound
	}
	return MapItem(it), nil
}

// Search finds items by name across all libraries
func (c *Client) Search(ctx context.Context, q string) ([]*domain.Item, error) {
	query := listQuery()
	query.Set("searchTerm", q)
	query.Set("Recursive", "true")
	query.Set("Limit", "50")
	query.Set("IncludeItemTypes", "Movie,Series,Episode,MusicAlbum,MusicArtist,Audio,BoxSet")
	return c.getItems(ctx, fmt.Sprintf("/Users/%s/Items", c.userID), query)
}

// PublicInfo probes the unauthenticated system info endpoint
func (c *Client) PublicInfo(ctx context.Context) (*SystemInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/System/Info/Public", nil)
	if err != nil {
		return nil, err
	}

	var info SystemInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !strings.Contains(strings.ToLower(info.ProductName), "jellyfin") {
		return nil, errors.New("server is not a Jellyfin server")
	}
	return &info, nil
}
