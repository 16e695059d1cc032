package call

import (
	"fmt"
)

// Normalize reduces a raw provider payload to a Record. Missing or
// malformed nested structure degrades to empty defaults; this
// function never fails. It runs after the webhook has already been
// acknowledged, so a broken payload must not take the task down.
func Normalize(raw map[string]interface{}) Record {
	data := nestedMap(raw, "data")
	clientData := nestedMap(data, "conversation_initiation_client_data")
	analysis := nestedMap(data, "analysis")

	record := Record{
		DynamicVariables: make(map[string]string),
		Summary:          stringValue(analysis["transcript_summary"]),
		Transcript:       make([]TranscriptEntry, 0),
	}

	for k, v := range nestedMap(clientData, "dynamic_variables") {
		record.DynamicVariables[k] = stringValue(v)
	}

	entries, _ := data["transcript"].([]interface{})
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		message := stringValue(entry["message"])
		if message == "" {
			continue
		}
		record.Transcript = append(record.Transcript, TranscriptEntry{
			Role:    stringValue(entry["role"]),
			Message: message,
		})
	}

	return record
}

// ConversationID reads the correlation identifier from a raw payload.
func ConversationID(raw map[string]interface{}) (string, bool) {
	id := stringValue(nestedMap(raw, "data")["conversation_id"])
	return id, id != ""
}

func nestedMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	nested, _ := m[key].(map[string]interface{})
	return nested
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}
