package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibeshot/gallery-admin/config"
)

// Client 推特数据源抽象
type Client interface {
	// ResolveUserID 把 @handle 解析为数字用户 ID
	ResolveUserID(ctx context.Context, handle string) (string, error)
	// TimelinePage 拉取一页时间线，cursor 为空表示首页
	TimelinePage(ctx context.Context, userID, cursor string) (*TimelineResponse, error)
}

// HTTPClient 基于 RapidAPI twitter-api45 的实现
type HTTPClient struct {
	apiKey  string
	apiHost string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewHTTPClient(cfg config.TwitterConfig) *HTTPClient {
	return &HTTPClient{
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		// 翻页间隔 1 秒，避免触发远端限流
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (c *HTTPClient) ResolveUserID(ctx context.Context, handle string) (string, error) {
	var out struct {
		RestID string `json:"rest_id"`
		ID     string `json:"id"`
	}
	params := url.Values{"screenname": {handle}}
	if err := c.get(ctx, "/screenname.php", params, handle, &out); err != nil {
		return "", &ResolveError{Handle: handle, Err: err}
	}
	id := out.RestID
	if id == "" {
		id = out.ID
	}
	if id == "" {
		return "", &ResolveError{Handle: handle, Err: fmt.Errorf("response carries no user id")}
	}
	return id, nil
}

func (c *HTTPClient) TimelinePage(ctx context.Context, userID, cursor string) (*TimelineResponse, error) {
	params := url.Values{"id": {userID}}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	var out TimelineResponse
	if err := c.get(ctx, "/timeline.php", params, userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, handle string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Handle: handle}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
