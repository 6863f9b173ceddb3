package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reqlens/internal/port"
	"reqlens/internal/provider"
	"reqlens/mocks"
)

func fallbackReply(name string) *port.AnalysisReply {
	return &port.AnalysisReply{
		Text:       "IMPROVED REQUIREMENT: x",
		Provider:   name,
		ModelUsed:  name + "-model",
		PromptUsed: "test prompt",
	}
}

func analysisRequest() port.AnalysisRequest {
	return port.AnalysisRequest{RequirementID: "REQ-1", Name: "Foo", Description: "Bar"}
}

func TestFallback_FirstSucceeds(t *testing.T) {
	p1 := new(mocks.MockAnalysisProvider)
	p2 := new(mocks.MockAnalysisProvider)

	p1.On("Analyze", mock.Anything, analysisRequest()).Return(fallbackReply("claude"), nil)

	f := provider.NewFallback([]port.AnalysisProvider{p1, p2}, []string{"claude", "gemini"})
	reply, err := f.Analyze(context.Background(), analysisRequest())

	require.NoError(t, err)
	assert.Equal(t, "claude", reply.Provider)
	p2.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestFallback_FirstFailsSecondSucceeds(t *testing.T) {
	p1 := new(mocks.MockAnalysisProvider)
	p2 := new(mocks.MockAnalysisProvider)

	p1.On("Analyze", mock.Anything, analysisRequest()).Return(nil, errors.New("boom"))
	p2.On("Analyze", mock.Anything, analysisRequest()).Return(fallbackReply("gemini"), nil)

	f := provider.NewFallback([]port.AnalysisProvider{p1, p2}, []string{"claude", "gemini"})
	reply, err := f.Analyze(context.Background(), analysisRequest())

	require.NoError(t, err)
	assert.Equal(t, "gemini", reply.Provider)
}

func TestFallback_RateLimitOpensCircuit(t *testing.T) {
	p1 := new(mocks.MockAnalysisProvider)
	p2 := new(mocks.MockAnalysisProvider)

	p1.On("Analyze", mock.Anything, analysisRequest()).
		Return(nil, provider.NewRateLimitError("claude", errors.New("429"), 60)).Once()
	p2.On("Analyze", mock.Anything, analysisRequest()).Return(fallbackReply("gemini"), nil).Twice()

	f := provider.NewFallback([]port.AnalysisProvider{p1, p2}, []string{"claude", "gemini"})

	// First call: claude rate limited, gemini serves.
	reply, err := f.Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)
	assert.Equal(t, "gemini", reply.Provider)

	// Second call: claude's circuit is open and must be skipped entirely.
	reply, err = f.Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)
	assert.Equal(t, "gemini", reply.Provider)
	p1.AssertNumberOfCalls(t, "Analyze", 1)
}

func TestFallback_AllRateLimited(t *testing.T) {
	p1 := new(mocks.MockAnalysisProvider)
	p2 := new(mocks.MockAnalysisProvider)

	p1.On("Analyze", mock.Anything, analysisRequest()).
		Return(nil, provider.NewRateLimitError("claude", errors.New("429"), 60))
	p2.On("Analyze", mock.Anything, analysisRequest()).
		Return(nil, provider.NewRateLimitError("gemini", errors.New("429"), 30))

	f := provider.NewFallback([]port.AnalysisProvider{p1, p2}, []string{"claude", "gemini"})
	_, err := f.Analyze(context.Background(), analysisRequest())

	require.Error(t, err)
	var rlErr *provider.RateLimitError
	assert.True(t, errors.As(err, &rlErr))
}

func TestFallback_AllFail(t *testing.T) {
	p1 := new(mocks.MockAnalysisProvider)

	p1.On("Analyze", mock.Anything, analysisRequest()).Return(nil, errors.New("boom"))

	f := provider.NewFallback([]port.AnalysisProvider{p1}, []string{"claude"})
	_, err := f.Analyze(context.Background(), analysisRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}
