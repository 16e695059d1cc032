package constants

import "time"

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8000
)

const (
	DefaultModel             = "gpt-5"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultExtractionTimeout = 60 * time.Second
)

const (
	DefaultSheetResource = "phone"
	DeliveryTimeout      = 30 * time.Second
)

const (
	DefaultWorkers   = 8
	DefaultQueueSize = 64
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	HTTPStatusOKMin = 200
	HTTPStatusOKMax = 300
)

const (
	DynamicVarCallTime = "system__time"
	DynamicVarCallerID = "system__caller_id"
)

const (
	FallbackPhoneNumber = "NA"
	DateTimeLayout      = "2006-01-02 15:04:05"
)
