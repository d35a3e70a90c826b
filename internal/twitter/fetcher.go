package twitter

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vibeshot/gallery-admin/pkg/logger"
)

const maxTimelinePages = 10

// Fetcher 按时间线翻页收集新推文
type Fetcher struct {
	client Client
}

func NewFetcher(client Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchSince 拉取 handle 自 cutoff 以来的带图推文。
// 遇到严格早于 cutoff 的推文停止翻页（等于 cutoff 的仍收录）；
// 限流和鉴权错误向上抛出，其余页级错误提前结束并返回已收集结果。
func (f *Fetcher) FetchSince(ctx context.Context, handle string, cutoff time.Time) ([]Tweet, error) {
	userID, err := f.client.ResolveUserID(ctx, handle)
	if err != nil {
		return nil, err
	}

	var (
		tweets []Tweet
		cursor string
	)
	for page := 0; page < maxTimelinePages; page++ {
		resp, err := f.client.TimelinePage(ctx, userID, cursor)
		if err != nil {
			var rateErr *RateLimitError
			var authErr *AuthError
			if errors.As(err, &rateErr) || errors.As(err, &authErr) {
				return nil, err
			}
			// 其他错误只截断翻页，保留已收集的结果
			logger.Warn("timeline page failed, stopping early",
				zap.String("handle", handle), zap.Int("page", page), zap.Error(err))
			return tweets, nil
		}

		for _, entry := range resp.Timeline {
			t := Normalize(entry, handle)
			if t == nil {
				continue
			}
			if t.CreatedAt.Before(cutoff) {
				return tweets, nil
			}
			tweets = append(tweets, *t)
		}

		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return tweets, nil
}
