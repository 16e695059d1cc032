package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{
			name: "nil payload",
			raw:  nil,
		},
		{
			name: "empty payload",
			raw:  map[string]interface{}{},
		},
		{
			name: "data present but empty",
			raw: map[string]interface{}{
				"data": map[string]interface{}{},
			},
		},
		{
			name: "data is not a mapping",
			raw: map[string]interface{}{
				"data": "not a map",
			},
		},
		{
			name: "transcript is not a list",
			raw: map[string]interface{}{
				"data": map[string]interface{}{
					"transcript": "oops",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Normalize(tt.raw)

			assert.Empty(t, record.Transcript)
			assert.Empty(t, record.Summary)
			assert.Empty(t, record.DynamicVariables)
			assert.NotNil(t, record.Transcript)
			assert.NotNil(t, record.DynamicVariables)
		})
	}
}

func TestNormalizeDropsEmptyMessages(t *testing.T) {
	raw := map[string]interface{}{
		"data": map[string]interface{}{
			"transcript": []interface{}{
				map[string]interface{}{"role": "agent", "message": "Hola"},
				map[string]interface{}{"role": "user", "message": ""},
				map[string]interface{}{"role": "user"},
				map[string]interface{}{"role": "user", "message": nil},
				map[string]interface{}{"role": "user", "message": "Quiero una demo"},
				"not an entry",
				map[string]interface{}{"role": "agent", "message": "Perfecto"},
			},
		},
	}

	record := Normalize(raw)

	require.Len(t, record.Transcript, 3)
	assert.Equal(t, TranscriptEntry{Role: "agent", Message: "Hola"}, record.Transcript[0])
	assert.Equal(t, TranscriptEntry{Role: "user", Message: "Quiero una demo"}, record.Transcript[1])
	assert.Equal(t, TranscriptEntry{Role: "agent", Message: "Perfecto"}, record.Transcript[2])
}

func TestNormalizeFullPayload(t *testing.T) {
	raw := map[string]interface{}{
		"data": map[string]interface{}{
			"conversation_id": "conv-1",
			"analysis": map[string]interface{}{
				"transcript_summary": "Cliente interesado en chatbots",
			},
			"conversation_initiation_client_data": map[string]interface{}{
				"dynamic_variables": map[string]interface{}{
					"system__caller_id": "+5491122334455",
					"system__time":      "2024-01-01 10:00:00",
					"attempt":           3,
				},
			},
			"transcript": []interface{}{
				map[string]interface{}{"role": "user", "message": "Hola"},
			},
		},
	}

	record := Normalize(raw)

	assert.Equal(t, "Cliente interesado en chatbots", record.Summary)
	assert.Equal(t, "+5491122334455", record.DynamicVariables["system__caller_id"])
	assert.Equal(t, "2024-01-01 10:00:00", record.DynamicVariables["system__time"])
	assert.Equal(t, "3", record.DynamicVariables["attempt"])
	require.Len(t, record.Transcript, 1)
}

func TestConversationID(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]interface{}
		wantID string
		wantOK bool
	}{
		{
			name: "present",
			raw: map[string]interface{}{
				"data": map[string]interface{}{"conversation_id": "c1"},
			},
			wantID: "c1",
			wantOK: true,
		},
		{
			name:   "missing data",
			raw:    map[string]interface{}{},
			wantOK: false,
		},
		{
			name: "empty id",
			raw: map[string]interface{}{
				"data": map[string]interface{}{"conversation_id": ""},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ConversationID(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
