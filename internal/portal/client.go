package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"judgments/internal"
	"judgments/internal/config"
	"judgments/internal/logger"
	"judgments/internal/pipeline"
)

const maxAttempts = 5

type Client struct {
	cfg         config.Config
	httpClient  *http.Client
	limiter     *RateLimiter
	log         *logger.Logger
	backoffBase time.Duration
}

// Page is one response of the list view for a group.
type Page struct {
	Group   string
	Number  int
	Records []internal.RawRecord
}

type listResponse struct {
	Row      []map[string]any `json:"Row"`
	NextHref string           `json:"NextHref"`
}

func NewClient(cfg config.Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.JudiciaryTimeoutMs) * time.Millisecond},
		limiter:     NewRateLimiter(cfg.JudiciaryRateLimitRPS),
		log:         log,
		backoffBase: 250 * time.Millisecond,
	}
}

// FetchGroup walks every page of one group, following NextHref, and hands
// each page to fn in order. An error from fn stops the walk.
func (c *Client) FetchGroup(ctx context.Context, group string, fn func(Page) error) error {
	params := c.groupParams(group)
	seen := map[string]struct{}{}

	for number := 1; ; number++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := c.do(ctx, http.MethodPost, c.listURL(params))
		if err != nil {
			return fmt.Errorf("group %q page %d: %w", group, number, err)
		}

		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("group %q page %d: decode: %w", group, number, err)
		}

		page := Page{Group: group, Number: number, Records: make([]internal.RawRecord, 0, len(resp.Row))}
		for _, row := range resp.Row {
			page.Records = append(page.Records, pipeline.RawRecordFromJSON(row))
		}
		c.log.Debug("fetched page", "group", group, "page", number, "rows", len(page.Records))
		if err := fn(page); err != nil {
			return err
		}

		next := strings.TrimSpace(resp.NextHref)
		if next == "" || next == "NA" {
			return nil
		}
		if _, ok := seen[next]; ok {
			c.log.Warn("repeated NextHref, stopping", "group", group, "next", next)
			return nil
		}
		seen[next] = struct{}{}
		if c.cfg.JudiciaryMaxPages > 0 && number >= c.cfg.JudiciaryMaxPages {
			return nil
		}
		if err := mergeNextHref(params, next); err != nil {
			return fmt.Errorf("group %q page %d: %w", group, number, err)
		}
	}
}

// Download fetches an absolute URL (an attachment) under the same rate limit
// and retry policy as the list view.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL)
}

// mergeNextHref copies the paging query of NextHref into params. The view id
// is pinned because NextHref carries the grouped view's own id.
func mergeNextHref(params map[string]string, next string) error {
	u, err := url.Parse(next)
	if err != nil {
		return fmt.Errorf("parse NextHref: %w", err)
	}
	for k, v := range u.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	params["View"] = viewID
	return nil
}

func (c *Client) baseURL() string {
	return strings.TrimRight(c.cfg.JudiciaryBaseURL, "/")
}

func (c *Client) listURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return c.baseURL() + listViewPath + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, target string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, target, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.sleep(ctx, attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < maxAttempts {
				lastErr = fmt.Errorf("judiciary status %d", resp.StatusCode)
				c.log.Warn("retrying request", "status", resp.StatusCode, "attempt", attempt)
				c.sleep(ctx, attempt)
				continue
			}
			return nil, fmt.Errorf("judiciary error: status=%d body=%s", resp.StatusCode, truncate(string(body), 200))
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("judiciary request failed")
	}
	return nil, lastErr
}

func (c *Client) setHeaders(req *http.Request) {
	base := c.baseURL()
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", base)
	req.Header.Set("Referer", base+searchPagePath)
	req.Header.Set("User-Agent", c.cfg.JudiciaryUserAgent)
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: fullScreenToken, Value: fullScreenOff})
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	backoff := c.backoffBase*time.Duration(1<<(attempt-1)) + time.Duration(rand.Intn(100))*time.Millisecond
	t := time.NewTimer(backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
