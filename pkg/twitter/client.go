package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"twfollowers/pkg/config"
	errs "twfollowers/pkg/errors"
	"twfollowers/pkg/logger"
	"twfollowers/pkg/retry"
)

const (
	rateLimitResetHeader = "x-rate-limit-reset"
	userAgent            = "twfollowers/1.0"
	bodyPreviewLength    = 200
)

// Client talks to the Twitter REST API with a bearer token
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	baseURL     string
	bearerToken string
	pageSize    int
	retryCfg    config.RetryConfig
	logger      logger.Logger
}

// NewClient creates a Twitter API client.
// retryCfg governs retries of transport failures only, nil disables them.
func NewClient(cfg *config.TwitterConfig, retryCfg *config.RetryConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	rc := config.RetryConfig{Enabled: false, MaxAttempts: 1}
	if retryCfg != nil {
		rc = *retryCfg
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		baseURL:     baseURL,
		bearerToken: cfg.BearerToken,
		pageSize:    cfg.PageSize,
		retryCfg:    rc,
		logger:      log,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetHeader sets a custom header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// FetchFollowersPage fetches one page of followers for screenName starting at cursor.
// It returns nil, nil when the API answers 200 with an empty or unreadable body.
func (c *Client) FetchFollowersPage(ctx context.Context, screenName string, cursor int64) (*FollowersPage, error) {
	url := FollowersListURL(c.baseURL, screenName, cursor, c.pageSize)

	c.logger.DebugWithFields("fetching followers page", map[string]interface{}{
		"screen_name": screenName,
		"cursor":      cursor,
		"url":         url,
	})

	retryCfg := retry.FromConfig(ctx, &c.retryCfg, c.logger.WithField("screen_name", screenName))

	return retry.DoWithResult(func() (*FollowersPage, error) {
		return c.fetchPage(ctx, url)
	}, retryCfg)
}

func (c *Client) fetchPage(ctx context.Context, url string) (*FollowersPage, error) {
	body, err := c.getBody(ctx, url)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.WarnWithFields("empty response body", map[string]interface{}{
			"url": url,
		})
		return nil, nil
	}

	var page *FollowersPage
	if err := json.Unmarshal(body, &page); err != nil {
		c.logger.WarnWithFields("unreadable response body", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return nil, nil
	}
	if page == nil || page.Users == nil {
		c.logger.WarnWithFields("response has no user list", map[string]interface{}{
			"url":          url,
			"body_preview": preview(body),
		})
		return nil, nil
	}

	return page, nil
}

// getBody performs an authenticated GET and returns the body of a 200 response
func (c *Client) getBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to create request")
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "failed to read response body")
	}
	return body, nil
}

func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		// Cancellation is not a network fault and must not be retried
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, fmt.Sprintf("network error: %v", err))
	}

	logger.LogRequest(c.logger, req.Method, req.URL.String(), resp.StatusCode, duration)
	return resp, nil
}

// checkResponseStatus maps non-200 statuses to typed errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	apiErr := errs.FromStatus(resp.StatusCode)
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.ResetAt = parseRateLimitReset(resp.Header.Get(rateLimitResetHeader))
	} else {
		// Drain a little of the body so the message reaches the logs
		data, _ := io.ReadAll(io.LimitReader(resp.Body, bodyPreviewLength))
		c.logger.WarnWithFields("API returned an error status", map[string]interface{}{
			"status":       resp.StatusCode,
			"url":          resp.Request.URL.String(),
			"body_preview": string(data),
		})
	}
	return apiErr
}

// parseRateLimitReset parses the unix timestamp header, zero time when absent or invalid
func parseRateLimitReset(v string) time.Time {
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > bodyPreviewLength {
		return s[:bodyPreviewLength] + "..."
	}
	return s
}
