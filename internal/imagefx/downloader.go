package imagefx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vibeshot/gallery-admin/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Downloader 下载远端图片，配置代理时优先走代理，失败后直连兜底
type Downloader struct {
	direct *http.Client
	proxy  *http.Client
}

func NewDownloader(proxyURL string) (*Downloader, error) {
	d := &Downloader{
		direct: &http.Client{Timeout: 30 * time.Second},
	}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		d.proxy = &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{Proxy: http.ProxyURL(u)},
		}
	}
	return d, nil
}

// Fetch 下载图片字节。响应 Content-Type 不是 image/* 视为失败
func (d *Downloader) Fetch(ctx context.Context, imgURL string) ([]byte, error) {
	if d.proxy != nil {
		data, err := d.fetchWith(ctx, d.proxy, imgURL)
		if err == nil {
			return data, nil
		}
		logger.Warn("proxy download failed, falling back to direct",
			zap.String("url", imgURL), zap.Error(err))
	}
	return d.fetchWith(ctx, d.direct, imgURL)
}

func (d *Downloader) fetchWith(ctx context.Context, client *http.Client, imgURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
