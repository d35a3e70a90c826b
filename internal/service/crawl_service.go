package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/classifier"
	"github.com/vibeshot/gallery-admin/internal/imagefx"
	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/twitter"
	"github.com/vibeshot/gallery-admin/pkg/logger"
)

var (
	ErrCreatorNotFound  = errors.New("creator not found")
	ErrUsernameRequired = errors.New("creator has no username and none was provided")
	ErrBadSinceDate     = errors.New("since_date must be YYYY-MM-DD")
)

// CrawlStats 单次抓取的统计，只随响应返回不落库
type CrawlStats struct {
	TweetsFound       int `json:"tweets_found"`
	TweetsAnalyzed    int `json:"tweets_analyzed"`
	TweetsRelevant    int `json:"tweets_relevant"`
	PromptsCreated    int `json:"prompts_created"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
	Filtered          int `json:"filtered"`
	ImagesFailed      int `json:"images_failed"`
}

// CrawlOptions 抓取参数
type CrawlOptions struct {
	Username       string // 覆盖创作者已存的用户名
	SinceDate      string // YYYY-MM-DD，缺省用 last_fetched_at
	SkipClassifier bool
}

// TweetSource 抓取阶段的抽象，便于测试注入
type TweetSource interface {
	FetchSince(ctx context.Context, handle string, cutoff time.Time) ([]twitter.Tweet, error)
}

// CrawlService 按创作者跑一遍完整的内容摄取流水线
type CrawlService struct {
	creators repository.CreatorRepository
	prompts  repository.PromptRepository
	source   TweetSource
	cls      classifier.Classifier // nil 表示未配置，跳过判定
	mat      imagefx.Materializer
	now      func() time.Time
}

func NewCrawlService(
	creators repository.CreatorRepository,
	prompts repository.PromptRepository,
	source TweetSource,
	cls classifier.Classifier,
	mat imagefx.Materializer,
) *CrawlService {
	return &CrawlService{
		creators: creators,
		prompts:  prompts,
		source:   source,
		cls:      cls,
		mat:      mat,
		now:      time.Now,
	}
}

// Crawl 执行一次摄取。每条推文独立走
// 去重 → 判定 → 图片落地 → 入库，单条失败只影响计数；
// 用户名解析失败、限流、鉴权失败终止整次运行且不产生统计。
func (s *CrawlService) Crawl(ctx context.Context, creatorID string, opts CrawlOptions) (*CrawlStats, error) {
	creator, err := s.creators.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("load creator: %w", err)
	}

	handle := strings.TrimPrefix(strings.TrimSpace(opts.Username), "@")
	if handle == "" && creator.Username != nil {
		handle = strings.TrimPrefix(*creator.Username, "@")
	}
	if handle == "" {
		return nil, ErrUsernameRequired
	}

	cutoff, err := s.resolveCutoff(creator, opts.SinceDate)
	if err != nil {
		return nil, err
	}

	tweets, err := s.source.FetchSince(ctx, handle, cutoff)
	if err != nil {
		return nil, err
	}

	stats := &CrawlStats{TweetsFound: len(tweets)}
	ledger := creator.Description

	for _, t := range tweets {
		dup, err := s.isDuplicate(ctx, t, ledger)
		if err != nil {
			logger.Warn("dedup check failed, skipping tweet",
				zap.String("tweet", t.URL), zap.Error(err))
			continue
		}
		if dup {
			stats.DuplicatesSkipped++
			continue
		}

		analysis, ok := s.classify(ctx, t, opts.SkipClassifier, stats)
		if !ok {
			stats.Filtered++
			continue
		}

		stored, _ := s.mat.Materialize(ctx, t.ImageURLs)
		if len(stored) == 0 {
			stats.ImagesFailed++
			ledger = s.recordFailure(ctx, creator.ID, ledger, t.URL)
			continue
		}

		if err := s.commit(ctx, handle, t, analysis, stored); err != nil {
			logger.Error("commit prompt failed",
				zap.String("tweet", t.URL), zap.Error(err))
			continue
		}
		stats.PromptsCreated++
	}

	// 计数与时间戳是尽力而为，失败不影响本次结果
	var successDelta int64
	if stats.PromptsCreated > 0 {
		successDelta = 1
	}
	if err := s.creators.TouchFetched(ctx, creator.ID, 1, successDelta); err != nil {
		logger.Warn("update creator fetch counters failed",
			zap.String("creator_id", creator.ID), zap.Error(err))
	}

	return stats, nil
}

func (s *CrawlService) resolveCutoff(creator *model.Creator, sinceDate string) (time.Time, error) {
	if sinceDate != "" {
		t, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return time.Time{}, ErrBadSinceDate
		}
		return t, nil
	}
	if creator.LastFetchedAt != nil {
		return *creator.LastFetchedAt, nil
	}
	return s.now().Add(-24 * time.Hour), nil
}

// isDuplicate 三路去重：正文精确匹配、提示词描述里的来源链接、创作者失败台账
func (s *CrawlService) isDuplicate(ctx context.Context, t twitter.Tweet, ledger string) (bool, error) {
	if trimmed := strings.TrimSpace(t.Text); trimmed != "" {
		exists, err := s.prompts.ExistsByText(ctx, trimmed)
		if err != nil || exists {
			return exists, err
		}
	}
	exists, err := s.prompts.ExistsBySourceURL(ctx, t.URL)
	if err != nil || exists {
		return exists, err
	}
	return strings.Contains(ledger, t.URL), nil
}

// classify 返回判定结果和是否保留。远端调用失败按相关处理，不因判定服务故障丢内容
func (s *CrawlService) classify(ctx context.Context, t twitter.Tweet, skip bool, stats *CrawlStats) (classifier.Analysis, bool) {
	if s.cls == nil || skip {
		return classifier.Analysis{IsRelevant: true, Confidence: 1}, true
	}
	stats.TweetsAnalyzed++
	a, err := s.cls.Classify(ctx, t.Text, len(t.ImageURLs))
	if err != nil {
		logger.Warn("classifier unavailable, accepting tweet",
			zap.String("tweet", t.URL), zap.Error(err))
		stats.TweetsRelevant++
		return classifier.Analysis{IsRelevant: true, Confidence: 0.5}, true
	}
	if !a.IsRelevant || a.Confidence < classifier.ConfidenceThreshold {
		return a, false
	}
	stats.TweetsRelevant++
	return a, true
}

func (s *CrawlService) commit(ctx context.Context, handle string, t twitter.Tweet, a classifier.Analysis, stored []imagefx.StoredImage) error {
	maxOrder, err := s.prompts.MaxSortOrder(ctx)
	if err != nil {
		return fmt.Errorf("query max sort order: %w", err)
	}

	title := a.SuggestedTitle
	if title == "" {
		title = fmt.Sprintf("@%s 的作品", handle)
	}
	promptText := a.ExtractedPrompt
	if promptText == "" {
		promptText = strings.TrimSpace(t.Text)
	}

	prompt := &model.Prompt{
		Title:          title,
		Description:    "来源: " + t.URL,
		PromptText:     promptText,
		NegativePrompt: a.ExtractedNegativePrompt,
		ImageURL:       stored[0].URL,
		ThumbnailURL:   stored[0].ThumbnailURL,
		AuthorName:     "@" + handle,
		Source:         model.SourceTwitter,
		Model:          a.SuggestedModel,
		IsPublished:    true,
		SortOrder:      maxOrder + 1,
		CreatedAt:      t.CreatedAt,
	}
	images := make([]model.PromptImage, len(stored))
	for i, img := range stored {
		images[i] = model.PromptImage{
			ImageURL:     img.URL,
			ThumbnailURL: img.ThumbnailURL,
			SortOrder:    i,
		}
	}
	return s.prompts.Create(ctx, prompt, images, nil)
}

// recordFailure 往创作者描述追加带日期的失败记录，按链接去重后写回
func (s *CrawlService) recordFailure(ctx context.Context, creatorID, ledger, permalink string) string {
	if strings.Contains(ledger, permalink) {
		return ledger
	}
	line := fmt.Sprintf("[%s] 图片处理失败: %s", s.now().Format("2006-01-02"), permalink)
	updated := ledger
	if updated != "" {
		updated += "\n"
	}
	updated += line

	if err := s.creators.UpdateDescription(ctx, creatorID, updated); err != nil {
		logger.Warn("append failure note failed",
			zap.String("creator_id", creatorID), zap.Error(err))
		return ledger
	}
	return updated
}
