package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/pkg/logger"
)

const viewKeyPrefix = "gallery:views:"

// ViewTracker 浏览计数。写热点先进 redis，定期汇总刷回数据库
type ViewTracker struct {
	rdb     *redis.Client
	prompts repository.PromptRepository
}

func NewViewTracker(rdb *redis.Client, prompts repository.PromptRepository) *ViewTracker {
	return &ViewTracker{rdb: rdb, prompts: prompts}
}

// Track 记一次浏览。redis 不可用时直接写库兜底
func (t *ViewTracker) Track(ctx context.Context, promptID string) error {
	if t.rdb == nil {
		return t.prompts.IncrementViews(ctx, map[string]int64{promptID: 1})
	}
	if err := t.rdb.Incr(ctx, viewKeyPrefix+promptID).Err(); err != nil {
		logger.Warn("redis view increment failed, writing through",
			zap.String("prompt_id", promptID), zap.Error(err))
		return t.prompts.IncrementViews(ctx, map[string]int64{promptID: 1})
	}
	return nil
}

// Flush 把累计的浏览数一次性刷回数据库并清掉缓存键
func (t *ViewTracker) Flush(ctx context.Context) error {
	if t.rdb == nil {
		return nil
	}
	keys, err := t.rdb.Keys(ctx, viewKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	counts := make(map[string]int64, len(keys))
	for _, key := range keys {
		val, err := t.rdb.GetDel(ctx, key).Result()
		if err != nil {
			if err != redis.Nil {
				logger.Warn("read view counter failed", zap.String("key", key), zap.Error(err))
			}
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		counts[strings.TrimPrefix(key, viewKeyPrefix)] = n
	}
	if len(counts) == 0 {
		return nil
	}
	return t.prompts.IncrementViews(ctx, counts)
}
