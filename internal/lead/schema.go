package lead

// SchemaName identifies the structured output schema to the model
// provider.
const SchemaName = "lead_analysis"

var fieldDescriptions = map[string]string{
	"name":             "Name of the contact or client.",
	"company":          "Company or organization name.",
	"email":            "Email address of the contact.",
	"contactReason":    "Reason for the contact or call.",
	"interest":         "Type of interest or topic discussed.",
	"projectOrService": "Specific project or service mentioned.",
	"interestLevel":    "Level of interest, e.g., High, Medium, Low.",
	"currentStatus":    "Current state of the interaction or lead.",
	"nextAction":       "Next action or follow-up required.",
	"shortSummary":     "Brief summary of the conversation.",
}

// ResponseSchema returns the JSON schema for strict structured
// output. Strict mode requires every property to be listed as
// required, so optionality is expressed as ["string","null"].
func ResponseSchema() map[string]interface{} {
	names := FieldNames()

	properties := make(map[string]interface{}, len(names))
	required := make([]interface{}, 0, len(names))
	for _, name := range names {
		properties[name] = map[string]interface{}{
			"type":        []interface{}{"string", "null"},
			"description": fieldDescriptions[name],
		}
		required = append(required, name)
	}

	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
