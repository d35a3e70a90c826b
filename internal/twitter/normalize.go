package twitter

import (
	"fmt"
	"time"
)

const photoSuffix = "?format=jpg&name=large"

// Normalize 把原始条目规范化为 Tweet。
// 丢弃游标条目、转推和不含图片的条目，丢弃时返回 nil。
func Normalize(e Entry, handle string) *Tweet {
	return normalizeAt(e, handle, time.Now)
}

// normalizeAt 便于测试注入时钟
func normalizeAt(e Entry, handle string, now func() time.Time) *Tweet {
	if e.Type == "cursor" {
		return nil
	}
	if e.Retweeted || len(e.RetweetedStatus) > 0 {
		return nil
	}

	id := e.TweetID
	if id == "" {
		id = e.IDStr
	}
	if id == "" {
		return nil
	}

	photos := e.photoURLs()
	if len(photos) == 0 {
		return nil
	}

	text := e.Text
	if text == "" {
		text = e.FullText
	}

	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p+photoSuffix)
	}

	return &Tweet{
		ID:        id,
		Text:      text,
		CreatedAt: parseCreatedAt(e.CreatedAt, now),
		ImageURLs: urls,
		URL:       fmt.Sprintf("https://twitter.com/%s/status/%s", handle, id),
	}
}

// photoURLs 依次尝试扁平结构与旧版结构的图片字段
func (e Entry) photoURLs() []string {
	if e.Media != nil && len(e.Media.Photo) > 0 {
		var urls []string
		for _, p := range e.Media.Photo {
			if p.MediaURLHTTPS != "" {
				urls = append(urls, p.MediaURLHTTPS)
			}
		}
		if len(urls) > 0 {
			return urls
		}
	}
	if e.ExtendedEntities != nil {
		var urls []string
		for _, m := range e.ExtendedEntities.Media {
			if m.Type == "photo" && m.MediaURLHTTPS != "" {
				urls = append(urls, m.MediaURLHTTPS)
			}
		}
		return urls
	}
	return nil
}

// parseCreatedAt 解析 "Tue Jan 06 14:54:38 +0000 2026" 格式，
// 解析失败时退回当前时间，保证条目不因时间戳异常被丢掉
func parseCreatedAt(s string, now func() time.Time) time.Time {
	if s != "" {
		if t, err := time.Parse(time.RubyDate, s); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return now()
}
