package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadrelay/internal/config"
	"leadrelay/internal/lead"
	"leadrelay/internal/logger"
	"leadrelay/internal/sheets"
)

type fakeExtractor struct {
	analysis lead.Analysis
	err      error
	panics   bool
	calls    int
}

func (f *fakeExtractor) Extract(ctx context.Context, system, user string) (lead.Analysis, error) {
	f.calls++
	if f.panics {
		panic("extractor exploded")
	}
	return f.analysis, f.err
}

func deliverySink(t *testing.T, handler http.HandlerFunc) (*sheets.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := sheets.NewClient(config.SheetyConfig{
		URL:      server.URL,
		Resource: "phone",
		Keys:     []string{"name", "email", "interestLevel", "dateTime", "phoneNumber"},
	}, logger.NopLogger())
	return client, server
}

func disabledSink() *sheets.Client {
	return sheets.NewClient(config.SheetyConfig{}, logger.NopLogger())
}

func webhookPayload(transcript []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"conversation_id": "conv-1",
			"analysis": map[string]interface{}{
				"transcript_summary": "resumen",
			},
			"conversation_initiation_client_data": map[string]interface{}{
				"dynamic_variables": map[string]interface{}{
					"system__time":      "2024-01-01 10:00:00",
					"system__caller_id": "+5491122334455",
				},
			},
			"transcript": transcript,
		},
	}
}

func TestProcessSkipsEmptyTranscript(t *testing.T) {
	extractor := &fakeExtractor{}
	service := NewService(extractor, disabledSink(), logger.NopLogger())

	service.Process(context.Background(), webhookPayload(nil), "conv-1")

	assert.Equal(t, 0, extractor.calls)
}

func TestProcessAbortsOnExtractionError(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("backend down")}

	delivered := false
	sink, _ := deliverySink(t, func(w http.ResponseWriter, r *http.Request) {
		delivered = true
	})

	service := NewService(extractor, sink, logger.NopLogger())
	service.Process(context.Background(), webhookPayload([]interface{}{
		map[string]interface{}{"role": "user", "message": "Hola"},
	}), "conv-1")

	assert.Equal(t, 1, extractor.calls)
	assert.False(t, delivered, "delivery must not run after a failed extraction")
}

func TestProcessDeliversMappedLead(t *testing.T) {
	name := "Ana"
	email := "ana@example.com"
	level := "Alto"
	extractor := &fakeExtractor{analysis: lead.Analysis{
		Name:          &name,
		Email:         &email,
		InterestLevel: &level,
	}}

	var captured map[string]map[string]string
	sink, _ := deliverySink(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	})

	service := NewService(extractor, sink, logger.NopLogger())
	service.Process(context.Background(), webhookPayload([]interface{}{
		map[string]interface{}{"role": "agent", "message": "Hola"},
		map[string]interface{}{"role": "user", "message": "Quiero una demo"},
	}), "conv-1")

	require.Contains(t, captured, "phone")
	record := captured["phone"]
	assert.Equal(t, "Ana", record["name"])
	assert.Equal(t, "ana@example.com", record["email"])
	assert.Equal(t, "Alto", record["interestLevel"])
	assert.Equal(t, "2024-01-01 10:00:00", record["dateTime"])
	assert.Equal(t, "+5491122334455", record["phoneNumber"])
}

func TestProcessSkipsDeliveryWhenSinkDisabled(t *testing.T) {
	name := "Ana"
	extractor := &fakeExtractor{analysis: lead.Analysis{Name: &name}}
	service := NewService(extractor, disabledSink(), logger.NopLogger())

	service.Process(context.Background(), webhookPayload([]interface{}{
		map[string]interface{}{"role": "user", "message": "Hola"},
	}), "conv-1")

	assert.Equal(t, 1, extractor.calls)
}

func TestProcessRecoversFromPanic(t *testing.T) {
	extractor := &fakeExtractor{panics: true}
	service := NewService(extractor, disabledSink(), logger.NopLogger())

	assert.NotPanics(t, func() {
		service.Process(context.Background(), webhookPayload([]interface{}{
			map[string]interface{}{"role": "user", "message": "Hola"},
		}), "conv-1")
	})
}
