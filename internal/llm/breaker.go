package llm

import (
	"context"
	"fmt"

	"leadrelay/internal/lead"
	"leadrelay/pkg/circuitbreaker"
)

// BreakerExtractor decorates an Extractor with a circuit breaker.
// When the breaker is open the call fails fast without reaching the
// backend; there is still no retry, so the at-most-once contract is
// unchanged.
type BreakerExtractor struct {
	inner Extractor
	cb    *circuitbreaker.Wrapper
	name  string
}

func NewBreakerExtractor(inner Extractor, name string, cfg circuitbreaker.Config) *BreakerExtractor {
	return &BreakerExtractor{
		inner: inner,
		cb:    circuitbreaker.NewWrapper(cfg),
		name:  name,
	}
}

func (b *BreakerExtractor) Extract(ctx context.Context, system, user string) (lead.Analysis, error) {
	result, err := b.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return b.inner.Extract(ctx, system, user)
	})

	b.cb.RecordRequest(err == nil)

	if err != nil {
		if b.cb.IsOpen() {
			return lead.Analysis{}, newExtractionError(fmt.Sprintf("circuit breaker is open for %s", b.name), err)
		}
		return lead.Analysis{}, err
	}

	analysis, ok := result.(lead.Analysis)
	if !ok {
		return lead.Analysis{}, newExtractionError("extractor returned invalid result type", nil)
	}

	return analysis, nil
}

func (b *BreakerExtractor) State() string {
	return b.cb.State().String()
}

func (b *BreakerExtractor) IsOpen() bool {
	return b.cb.IsOpen()
}
