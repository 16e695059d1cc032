package call

// TranscriptEntry is a single turn of the call transcript.
type TranscriptEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Record is the minimal stable shape extracted from a provider
// webhook payload. It is created once per webhook and not mutated
// afterwards.
type Record struct {
	DynamicVariables map[string]string `json:"dynamic_variables"`
	Summary          string            `json:"summary"`
	Transcript       []TranscriptEntry `json:"transcript"`
}
