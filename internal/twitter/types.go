package twitter

import (
	"encoding/json"
	"time"
)

// Tweet 规范化后的推文
type Tweet struct {
	ID        string
	Text      string
	CreatedAt time.Time
	ImageURLs []string
	URL       string
}

// TimelineResponse 时间线单页响应
type TimelineResponse struct {
	Timeline   []Entry `json:"timeline"`
	NextCursor string  `json:"next_cursor"`
}

// Entry 时间线原始条目，兼容多个接口版本的字段布局
type Entry struct {
	Type string `json:"type"` // "cursor" 等非内容条目

	// 当前扁平结构
	TweetID   string      `json:"tweet_id"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"created_at"`
	Retweeted bool        `json:"retweeted"`
	Media     *EntryMedia `json:"media"`

	// 旧版结构
	IDStr            string            `json:"id_str"`
	FullText         string            `json:"full_text"`
	RetweetedStatus  json.RawMessage   `json:"retweeted_status"`
	ExtendedEntities *ExtendedEntities `json:"extended_entities"`
}

type EntryMedia struct {
	Photo []Photo `json:"photo"`
}

type Photo struct {
	MediaURLHTTPS string `json:"media_url_https"`
}

type ExtendedEntities struct {
	Media []LegacyMedia `json:"media"`
}

type LegacyMedia struct {
	Type          string `json:"type"`
	MediaURLHTTPS string `json:"media_url_https"`
}
