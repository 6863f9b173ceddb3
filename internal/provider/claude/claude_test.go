package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlens/internal/config"
	"reqlens/internal/port"
	"reqlens/internal/provider"
	"reqlens/internal/provider/claude"
)

func testConfig() *config.AnalyzerProviderConfig {
	return &config.AnalyzerProviderConfig{Provider: "claude", APIKey: "test-key", TimeoutSecs: 5}
}

func TestProvider_Analyze(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": "IMPROVED REQUIREMENT: The system shall X."}},
			"stop_reason": "end_turn",
		})
	}))
	defer srv.Close()

	p := claude.NewProviderWithEndpoint(testConfig(), srv.URL)
	reply, err := p.Analyze(context.Background(), port.AnalysisRequest{
		RequirementID: "REQ-1", Name: "Foo", Description: "The system shall be fast.",
	})

	require.NoError(t, err)
	assert.Equal(t, "claude", reply.Provider)
	assert.Equal(t, "IMPROVED REQUIREMENT: The system shall X.", reply.Text)
	assert.Contains(t, reply.PromptUsed, "REQ-1")
	assert.Contains(t, reply.PromptUsed, "The system shall be fast.")

	// The prompt travels as the single user message.
	msgs := gotBody["messages"].([]interface{})
	require.Len(t, msgs, 1)
}

func TestProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := claude.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-1"})

	var rlErr *provider.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, float64(17), rlErr.RetryAfter.Seconds())
}

func TestProvider_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": "partial"}},
			"stop_reason": "max_tokens",
		})
	}))
	defer srv.Close()

	p := claude.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := claude.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-1"})

	require.Error(t, err)
	var rlErr *provider.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}
