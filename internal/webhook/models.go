package webhook

// AcceptedResponse is the 202 fast-ack body. The detached pipeline's
// outcome is never surfaced to the webhook sender.
type AcceptedResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	RequestID string       `json:"requestId"`
	Data      AcceptedData `json:"data"`
}

type AcceptedData struct {
	PayloadSize         int     `json:"payloadSize"`
	ResponseTimeSeconds float64 `json:"responseTimeSeconds"`
	ProcessingStatus    string  `json:"processingStatus"`
}

// ErrorResponse is the body for unexpected failures in the
// synchronous validation window.
type ErrorResponse struct {
	Status              string  `json:"status"`
	Message             string  `json:"message"`
	RequestID           string  `json:"requestId"`
	Error               string  `json:"error"`
	ResponseTimeSeconds float64 `json:"responseTimeSeconds"`
}

// HealthResponse reports process liveness and whether required
// external configuration is present, without exercising any external
// call.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  ServicesStatus `json:"services"`
}

type ServicesStatus struct {
	OpenAI    bool `json:"openai"`
	Sheety    bool `json:"sheety"`
	SheetyURL bool `json:"sheetyUrl"`
}
