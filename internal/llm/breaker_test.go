package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadrelay/internal/lead"
	"leadrelay/pkg/circuitbreaker"
)

type stubExtractor struct {
	analysis lead.Analysis
	err      error
	calls    int
}

func (s *stubExtractor) Extract(ctx context.Context, system, user string) (lead.Analysis, error) {
	s.calls++
	return s.analysis, s.err
}

func testBreakerConfig() circuitbreaker.Config {
	return circuitbreaker.Config{
		Name:        "extraction",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
}

func TestBreakerExtractorPassesThrough(t *testing.T) {
	name := "Ana"
	stub := &stubExtractor{analysis: lead.Analysis{Name: &name}}
	extractor := NewBreakerExtractor(stub, "extraction", testBreakerConfig())

	analysis, err := extractor.Extract(context.Background(), "s", "u")

	require.NoError(t, err)
	require.NotNil(t, analysis.Name)
	assert.Equal(t, "Ana", *analysis.Name)
	assert.Equal(t, 1, stub.calls)
	assert.False(t, extractor.IsOpen())
}

func TestBreakerExtractorOpensAfterFailures(t *testing.T) {
	stub := &stubExtractor{err: errors.New("backend down")}
	extractor := NewBreakerExtractor(stub, "extraction", testBreakerConfig())

	for i := 0; i < 3; i++ {
		_, err := extractor.Extract(context.Background(), "s", "u")
		require.Error(t, err)
	}

	assert.True(t, extractor.IsOpen())
	assert.Equal(t, 3, stub.calls)

	// Open breaker fails fast without touching the backend.
	_, err := extractor.Extract(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, IsExtractionError(err))
	assert.Equal(t, 3, stub.calls)
}
