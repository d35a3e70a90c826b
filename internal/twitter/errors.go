package twitter

import "fmt"

// RateLimitError 远端限流（429），整次抓取终止，立即重试无意义
type RateLimitError struct {
	Handle string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("twitter api rate limited while fetching @%s", e.Handle)
}

// Hint 给调用方的处置建议
func (e *RateLimitError) Hint() string {
	return "API 限流，请稍后（至少几分钟）再重试"
}

// AuthError 鉴权或订阅失效（401/403）
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("twitter api auth failed with status %d", e.Status)
}

func (e *AuthError) Hint() string {
	return "请检查 RapidAPI key 是否有效、订阅是否过期"
}

// ResolveError 用户名解析失败，阻断整次抓取
type ResolveError struct {
	Handle string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve user id for @%s: %v", e.Handle, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
