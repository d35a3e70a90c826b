package twitter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resolveErr error
	pages      []*TimelineResponse
	pageErrs   map[int]error
	calls      int
}

func (f *fakeClient) ResolveUserID(ctx context.Context, handle string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return "1000", nil
}

func (f *fakeClient) TimelinePage(ctx context.Context, userID, cursor string) (*TimelineResponse, error) {
	idx := f.calls
	f.calls++
	if err, ok := f.pageErrs[idx]; ok {
		return nil, err
	}
	if idx >= len(f.pages) {
		return &TimelineResponse{}, nil
	}
	return f.pages[idx], nil
}

func photoEntry(id, text, createdAt string) Entry {
	return Entry{
		TweetID:   id,
		Text:      text,
		CreatedAt: createdAt,
		Media:     &EntryMedia{Photo: []Photo{{MediaURLHTTPS: "https://pbs.example.com/" + id}}},
	}
}

func rubyDate(t time.Time) string { return t.Format(time.RubyDate) }

func TestFetchSinceCutoffBoundary(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{pages: []*TimelineResponse{{
		Timeline: []Entry{
			photoEntry("3", "newest", rubyDate(cutoff.Add(48*time.Hour))),
			photoEntry("2", "exactly at cutoff", rubyDate(cutoff)),
			photoEntry("1", "older", rubyDate(cutoff.Add(-time.Second))),
			photoEntry("0", "never reached", rubyDate(cutoff.Add(-time.Hour))),
		},
		NextCursor: "more",
	}}}

	tweets, err := NewFetcher(client).FetchSince(context.Background(), "alice", cutoff)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "3", tweets[0].ID)
	assert.Equal(t, "2", tweets[1].ID)
	// 碰到过线推文后不再翻页
	assert.Equal(t, 1, client.calls)
}

func TestFetchSinceResolveFailureIsFatal(t *testing.T) {
	client := &fakeClient{resolveErr: &ResolveError{Handle: "ghost", Err: errors.New("no such user")}}
	_, err := NewFetcher(client).FetchSince(context.Background(), "ghost", time.Now())

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, 0, client.calls)
}

func TestFetchSinceRateLimitAborts(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{
		pages: []*TimelineResponse{{
			Timeline:   []Entry{photoEntry("5", "kept so far", rubyDate(cutoff.Add(time.Hour)))},
			NextCursor: "next",
		}},
		pageErrs: map[int]error{1: &RateLimitError{Handle: "alice"}},
	}

	tweets, err := NewFetcher(client).FetchSince(context.Background(), "alice", cutoff)
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	// 已收集的结果随限流一起丢弃
	assert.Nil(t, tweets)
}

func TestFetchSinceAuthErrorAborts(t *testing.T) {
	client := &fakeClient{pageErrs: map[int]error{0: &AuthError{Status: 403}}}
	_, err := NewFetcher(client).FetchSince(context.Background(), "alice", time.Now().Add(-time.Hour))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestFetchSinceGenericErrorKeepsPartialResults(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{
		pages: []*TimelineResponse{{
			Timeline:   []Entry{photoEntry("5", "page one", rubyDate(cutoff.Add(time.Hour)))},
			NextCursor: "next",
		}},
		pageErrs: map[int]error{1: fmt.Errorf("unexpected status 502 from /timeline.php")},
	}

	tweets, err := NewFetcher(client).FetchSince(context.Background(), "alice", cutoff)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "5", tweets[0].ID)
}

func TestFetchSincePageBudget(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var pages []*TimelineResponse
	for i := 0; i < 20; i++ {
		pages = append(pages, &TimelineResponse{
			Timeline:   []Entry{photoEntry(fmt.Sprintf("t%d", i), "x", rubyDate(cutoff.Add(time.Hour)))},
			NextCursor: fmt.Sprintf("c%d", i),
		})
	}
	client := &fakeClient{pages: pages}

	tweets, err := NewFetcher(client).FetchSince(context.Background(), "alice", cutoff)
	require.NoError(t, err)
	assert.Len(t, tweets, maxTimelinePages)
	assert.Equal(t, maxTimelinePages, client.calls)
}

func TestFetchSinceStopsOnEmptyCursor(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{pages: []*TimelineResponse{{
		Timeline: []Entry{photoEntry("1", "only page", rubyDate(cutoff.Add(time.Hour)))},
	}}}

	tweets, err := NewFetcher(client).FetchSince(context.Background(), "alice", cutoff)
	require.NoError(t, err)
	assert.Len(t, tweets, 1)
	assert.Equal(t, 1, client.calls)
}
