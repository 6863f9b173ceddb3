package openai_test

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
	"reqlens/internal/provider/openai"
)

func testConfig() *config.AnalyzerProviderConfig {
	return &config.AnalyzerProviderConfig{Provider: "openai", APIKey: "test-key", TimeoutSecs: 5}
}

func chatBody(content, finishReason string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]string{"content": content},
				"finish_reason": finishReason,
			},
		},
	}
}

func TestProvider_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(chatBody("QUALITY SCORE: 7/10", "stop"))
	}))
	defer srv.Close()

	p := openai.NewProviderWithEndpoint(testConfig(), srv.URL)
	reply, err := p.Analyze(context.Background(), port.AnalysisRequest{
		RequirementID: "REQ-9", Name: "Audit", Description: "The system shall log all access.",
	})

	require.NoError(t, err)
	assert.Equal(t, "openai", reply.Provider)
	assert.Equal(t, "QUALITY SCORE: 7/10", reply.Text)
	assert.Contains(t, reply.PromptUsed, "REQ-9")
}

func TestProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := openai.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-9"})

	var rlErr *provider.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	// No Retry-After header falls back to the default wait.
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestProvider_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatBody("partial", "length"))
	}))
	defer srv.Close()

	p := openai.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-9"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestProvider_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	p := openai.NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Analyze(context.Background(), port.AnalysisRequest{RequirementID: "REQ-9"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
