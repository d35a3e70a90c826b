package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vibeshot/gallery-admin/internal/classifier"
	"github.com/vibeshot/gallery-admin/internal/imagefx"
	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/twitter"
	"github.com/vibeshot/gallery-admin/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fakeSource struct {
	tweets []twitter.Tweet
	err    error
	calls  int
}

func (f *fakeSource) FetchSince(ctx context.Context, handle string, cutoff time.Time) ([]twitter.Tweet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tweets, nil
}

type fakeClassifier struct {
	analysis classifier.Analysis
	err      error
	calls    int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string, imageCount int) (classifier.Analysis, error) {
	f.calls++
	return f.analysis, f.err
}

type fakeMaterializer struct {
	failing map[string]bool
	calls   int
}

func (f *fakeMaterializer) Materialize(ctx context.Context, urls []string) ([]imagefx.StoredImage, int) {
	f.calls++
	var stored []imagefx.StoredImage
	failed := 0
	for i, u := range urls {
		if f.failing[u] {
			failed++
			continue
		}
		stored = append(stored, imagefx.StoredImage{
			URL:          fmt.Sprintf("https://cdn.example.com/images/%d-%s.png", i, hashish(u)),
			ThumbnailURL: fmt.Sprintf("https://cdn.example.com/thumbnails/%d-%s.png", i, hashish(u)),
		})
	}
	return stored, failed
}

func hashish(u string) string {
	return strings.NewReplacer("https://", "", "/", "-", "?", "-", "&", "-", "=", "-").Replace(u)
}

func tweetWithImages(id, text string, urls ...string) twitter.Tweet {
	return twitter.Tweet{
		ID:        id,
		Text:      text,
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		ImageURLs: urls,
		URL:       "https://twitter.com/alice/status/" + id,
	}
}

type crawlFixture struct {
	svc      *CrawlService
	creators repository.CreatorRepository
	prompts  repository.PromptRepository
	source   *fakeSource
	cls      *fakeClassifier
	mat      *fakeMaterializer
	creator  *model.Creator
	db       *gorm.DB
}

func newCrawlFixture(t *testing.T) *crawlFixture {
	t.Helper()
	db := newTestDB(t)
	f := &crawlFixture{
		creators: repository.NewCreatorRepository(db),
		prompts:  repository.NewPromptRepository(db),
		source:   &fakeSource{},
		cls:      &fakeClassifier{analysis: classifier.Analysis{IsRelevant: true, Confidence: 0.9}},
		mat:      &fakeMaterializer{},
		db:       db,
	}
	f.svc = NewCrawlService(f.creators, f.prompts, f.source, f.cls, f.mat)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) }

	username := "alice"
	f.creator = &model.Creator{Username: &username, DisplayName: "Alice", IsActive: true}
	require.NoError(t, f.creators.Create(context.Background(), f.creator))
	return f
}

func TestCrawlEndToEnd(t *testing.T) {
	f := newCrawlFixture(t)
	f.source.tweets = []twitter.Tweet{
		tweetWithImages("1", "a cat in the rain", "https://pbs/1a"),
		tweetWithImages("2", "cyberpunk street at night", "https://pbs/2a", "https://pbs/2b"),
		tweetWithImages("3", "watercolor mountains", "https://pbs/3a"),
	}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TweetsFound)
	assert.Equal(t, 3, stats.TweetsAnalyzed)
	assert.Equal(t, 3, stats.TweetsRelevant)
	assert.Equal(t, 3, stats.PromptsCreated)
	assert.Equal(t, 0, stats.DuplicatesSkipped)
	assert.Equal(t, 0, stats.ImagesFailed)

	prompts, total, err := f.prompts.List(context.Background(), repository.PromptListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, p := range prompts {
		assert.Equal(t, model.SourceTwitter, p.Source)
		assert.Contains(t, p.Description, "https://twitter.com/alice/status/")
		assert.Equal(t, "@alice", p.AuthorName)
	}

	updated, err := f.creators.GetByID(context.Background(), f.creator.ID)
	require.NoError(t, err)
	assert.NotNil(t, updated.LastFetchedAt)
	assert.EqualValues(t, 1, updated.FetchCount)
	assert.EqualValues(t, 1, updated.SuccessCount)
}

func TestCrawlSortOrderGrowsFromCurrentMax(t *testing.T) {
	f := newCrawlFixture(t)
	require.NoError(t, f.prompts.Create(context.Background(),
		&model.Prompt{Title: "existing", PromptText: "old one", SortOrder: 7},
		[]model.PromptImage{{ImageURL: "https://cdn/x.png"}}, nil))

	f.source.tweets = []twitter.Tweet{tweetWithImages("1", "new content", "https://pbs/1a")}
	_, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)

	var created model.Prompt
	require.NoError(t, f.db.Where("prompt_text = ?", "new content").First(&created).Error)
	assert.Equal(t, 8, created.SortOrder)
}

func TestCrawlSkipsDuplicateTextWithoutMaterializing(t *testing.T) {
	f := newCrawlFixture(t)
	require.NoError(t, f.prompts.Create(context.Background(),
		&model.Prompt{Title: "dup", PromptText: "a cat in the rain"},
		[]model.PromptImage{{ImageURL: "https://cdn/c.png"}}, nil))

	f.source.tweets = []twitter.Tweet{tweetWithImages("9", "  a cat in the rain  ", "https://pbs/9a")}
	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicatesSkipped)
	assert.Equal(t, 0, stats.PromptsCreated)
	assert.Equal(t, 0, f.mat.calls)
	assert.Equal(t, 0, f.cls.calls)
}

func TestCrawlSkipsKnownPermalink(t *testing.T) {
	f := newCrawlFixture(t)
	require.NoError(t, f.prompts.Create(context.Background(),
		&model.Prompt{Title: "prior", PromptText: "something else",
			Description: "来源: https://twitter.com/alice/status/9"},
		[]model.PromptImage{{ImageURL: "https://cdn/p.png"}}, nil))

	f.source.tweets = []twitter.Tweet{tweetWithImages("9", "brand new text", "https://pbs/9a")}
	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicatesSkipped)
	assert.Equal(t, 0, f.mat.calls)
}

func TestCrawlSkipsPermalinkInFailureLedger(t *testing.T) {
	f := newCrawlFixture(t)
	require.NoError(t, f.creators.UpdateDescription(context.Background(), f.creator.ID,
		"[2024-05-01] 图片处理失败: https://twitter.com/alice/status/9"))

	f.source.tweets = []twitter.Tweet{tweetWithImages("9", "fresh text", "https://pbs/9a")}
	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicatesSkipped)
	assert.Equal(t, 0, f.mat.calls)
}

func TestCrawlAllImagesFailedAppendsLedgerOnce(t *testing.T) {
	f := newCrawlFixture(t)
	f.mat.failing = map[string]bool{"https://pbs/1a": true, "https://pbs/1b": true}
	f.source.tweets = []twitter.Tweet{
		tweetWithImages("1", "doomed tweet", "https://pbs/1a", "https://pbs/1b"),
	}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ImagesFailed)
	assert.Equal(t, 0, stats.PromptsCreated)

	_, total, err := f.prompts.List(context.Background(), repository.PromptListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	c, err := f.creators.GetByID(context.Background(), f.creator.ID)
	require.NoError(t, err)
	want := "[2024-06-02] 图片处理失败: https://twitter.com/alice/status/1"
	assert.Equal(t, 1, strings.Count(c.Description, "https://twitter.com/alice/status/1"))
	assert.Contains(t, c.Description, want)

	// 第二次运行同一条推文：台账命中去重，不再追加
	stats, err = f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicatesSkipped)
	assert.Equal(t, 0, stats.ImagesFailed)

	c, err = f.creators.GetByID(context.Background(), f.creator.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(c.Description, "https://twitter.com/alice/status/1"))
}

func TestCrawlCoverIsFirstSuccessfulImage(t *testing.T) {
	f := newCrawlFixture(t)
	f.mat.failing = map[string]bool{"https://pbs/1a": true}
	f.source.tweets = []twitter.Tweet{
		tweetWithImages("1", "leading image fails", "https://pbs/1a", "https://pbs/1b"),
	}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PromptsCreated)

	prompts, _, err := f.prompts.List(context.Background(), repository.PromptListParams{})
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0].ImageURL, hashish("https://pbs/1b"))

	images, err := f.prompts.ListImages(context.Background(), prompts[0].ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 0, images[0].SortOrder)
}

func TestCrawlClassifierFailOpen(t *testing.T) {
	f := newCrawlFixture(t)
	f.cls.err = fmt.Errorf("upstream 500")
	f.source.tweets = []twitter.Tweet{tweetWithImages("1", "text", "https://pbs/1a")}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PromptsCreated)
	assert.Equal(t, 0, stats.Filtered)
}

func TestCrawlClassifierFiltersBelowThreshold(t *testing.T) {
	f := newCrawlFixture(t)
	f.cls.analysis = classifier.Analysis{IsRelevant: true, Confidence: 0.5}
	f.source.tweets = []twitter.Tweet{tweetWithImages("1", "borderline", "https://pbs/1a")}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Filtered)
	assert.Equal(t, 0, stats.PromptsCreated)
	assert.Equal(t, 0, f.mat.calls)
}

func TestCrawlSkipClassifierOption(t *testing.T) {
	f := newCrawlFixture(t)
	f.cls.analysis = classifier.Analysis{IsRelevant: false, Confidence: 0}
	f.source.tweets = []twitter.Tweet{tweetWithImages("1", "anything goes", "https://pbs/1a")}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{
		SinceDate: "2024-01-01", SkipClassifier: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.cls.calls)
	assert.Equal(t, 1, stats.PromptsCreated)
}

func TestCrawlClassifierUsesExtractedFields(t *testing.T) {
	f := newCrawlFixture(t)
	f.cls.analysis = classifier.Analysis{
		IsRelevant:              true,
		Confidence:              0.95,
		ExtractedPrompt:         "a cat, watercolor",
		ExtractedNegativePrompt: "blurry",
		SuggestedTitle:          "水彩猫",
		SuggestedModel:          "Midjourney",
	}
	f.source.tweets = []twitter.Tweet{tweetWithImages("1", "看看我的新作品！a cat, watercolor", "https://pbs/1a")}

	_, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	require.NoError(t, err)

	prompts, _, err := f.prompts.List(context.Background(), repository.PromptListParams{})
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "水彩猫", prompts[0].Title)
	assert.Equal(t, "a cat, watercolor", prompts[0].PromptText)
	assert.Equal(t, "blurry", prompts[0].NegativePrompt)
	assert.Equal(t, "Midjourney", prompts[0].Model)
}

func TestCrawlRateLimitAbortsWithoutStats(t *testing.T) {
	f := newCrawlFixture(t)
	f.source.err = &twitter.RateLimitError{Handle: "alice"}

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "2024-01-01"})
	var rateErr *twitter.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Nil(t, stats)

	c, err := f.creators.GetByID(context.Background(), f.creator.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, c.FetchCount)
	assert.Nil(t, c.LastFetchedAt)
}

func TestCrawlInputValidation(t *testing.T) {
	f := newCrawlFixture(t)

	_, err := f.svc.Crawl(context.Background(), "no-such-id", CrawlOptions{})
	assert.ErrorIs(t, err, ErrCreatorNotFound)

	_, err = f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{SinceDate: "06/01/2024"})
	assert.ErrorIs(t, err, ErrBadSinceDate)

	noName := &model.Creator{DisplayName: "placeholder"}
	require.NoError(t, f.creators.Create(context.Background(), noName))
	_, err = f.svc.Crawl(context.Background(), noName.ID, CrawlOptions{})
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestCrawlUsernameOverrideStripsAt(t *testing.T) {
	f := newCrawlFixture(t)
	f.source.tweets = nil

	stats, err := f.svc.Crawl(context.Background(), f.creator.ID, CrawlOptions{
		Username: "@someoneelse", SinceDate: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TweetsFound)
	assert.Equal(t, 1, f.source.calls)
}
