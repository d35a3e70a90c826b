package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshot/gallery-admin/config"
)

func TestParseAnalysis(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Analysis
	}{
		{
			"plain json",
			`{"is_relevant": true, "confidence": 0.92, "suggested_title": "雨中的猫"}`,
			Analysis{IsRelevant: true, Confidence: 0.92, SuggestedTitle: "雨中的猫"},
		},
		{
			"fenced json",
			"```json\n{\"is_relevant\": true, \"confidence\": 0.8}\n```",
			Analysis{IsRelevant: true, Confidence: 0.8},
		},
		{
			"bare fence",
			"```\n{\"is_relevant\": false, \"confidence\": 0.3}\n```",
			Analysis{IsRelevant: false, Confidence: 0.3},
		},
		{
			"garbage degrades to irrelevant",
			"抱歉，我无法判断这条推文。",
			Analysis{IsRelevant: false, Confidence: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseAnalysis(tc.content))
		})
	}
}

func TestChatClientClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"is_relevant\": true, \"confidence\": 0.95, \"extracted_prompt\": \"a cat\"}"}}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(config.ClassifierConfig{
		Provider: "deepseek",
		APIKey:   "sk-test",
		BaseURL:  srv.URL,
		Model:    "deepseek-chat",
	})
	a, err := c.Classify(context.Background(), "a cat sitting on a roof", 2)
	require.NoError(t, err)
	assert.True(t, a.IsRelevant)
	assert.Equal(t, 0.95, a.Confidence)
	assert.Equal(t, "a cat", a.ExtractedPrompt)
}

func TestChatClientRemoteFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChatClient(config.ClassifierConfig{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	_, err := c.Classify(context.Background(), "text", 1)
	require.Error(t, err)
}

func TestProviderBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.deepseek.com", providerBaseURL("deepseek"))
	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1", providerBaseURL("qwen"))
	assert.Equal(t, "https://api.openai.com/v1", providerBaseURL("openai"))
}
