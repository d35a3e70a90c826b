package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vibeshot/gallery-admin/config"
)

// ConfidenceThreshold 判定推文与 AI 绘图相关的最低置信度
const ConfidenceThreshold = 0.7

// Analysis 单条推文的判定结果，提取字段可为空
type Analysis struct {
	IsRelevant              bool    `json:"is_relevant"`
	Confidence              float64 `json:"confidence"`
	Reason                  string  `json:"reason"`
	ExtractedPrompt         string  `json:"extracted_prompt"`
	ExtractedNegativePrompt string  `json:"extracted_negative_prompt"`
	SuggestedTitle          string  `json:"suggested_title"`
	SuggestedModel          string  `json:"suggested_model"`
}

// Classifier 判定推文文本是否为 AI 绘图 prompt
type Classifier interface {
	Classify(ctx context.Context, text string, imageCount int) (Analysis, error)
}

const systemPrompt = `你是一个内容分析助手。判断给定的推文是否包含 AI 绘图提示词（用于 Midjourney、Stable Diffusion、DALL-E、Flux 等工具的 prompt）。
只输出 JSON，不要输出其他内容，格式为：
{"is_relevant": true/false, "confidence": 0.0-1.0, "reason": "判断依据", "extracted_prompt": "提取出的正向提示词", "extracted_negative_prompt": "负向提示词，没有则为空", "suggested_title": "给这条作品起的简短中文标题", "suggested_model": "推测使用的模型，没有则为空"}`

// providerBaseURL 各提供商的 OpenAI 兼容接口地址
func providerBaseURL(provider string) string {
	switch provider {
	case "deepseek":
		return "https://api.deepseek.com"
	case "qwen":
		return "https://dashscope.aliyuncs.com/compatible-mode/v1"
	default:
		return "https://api.openai.com/v1"
	}
}

// ChatClient 调用 OpenAI 兼容的 chat completions 接口
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewChatClient(cfg config.ClassifierConfig) *ChatClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = providerBaseURL(cfg.Provider)
	}
	return &ChatClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatClient) Classify(ctx context.Context, text string, imageCount int) (Analysis, error) {
	userPrompt := fmt.Sprintf("推文内容：\n%s\n\n附图数量：%d", text, imageCount)
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return Analysis{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Analysis{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Analysis{}, fmt.Errorf("chat completions status %d: %s", resp.StatusCode, body)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Analysis{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return Analysis{}, fmt.Errorf("chat completions returned no choices")
	}

	return ParseAnalysis(out.Choices[0].Message.Content), nil
}

// ParseAnalysis 解析模型输出。模型偶尔会包一层 markdown 代码块，先剥掉；
// 解析失败按不相关处理，宁可漏不可错
func ParseAnalysis(content string) Analysis {
	content = stripFences(content)
	var a Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return Analysis{IsRelevant: false, Confidence: 0}
	}
	return a
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
