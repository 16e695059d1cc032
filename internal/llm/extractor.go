package llm

import (
	"context"

	"leadrelay/internal/lead"
)

// Extractor is the chat-style structured completion capability: a
// system/user prompt pair in, a schema-validated Analysis out. Any
// backend implementing it is substitutable.
type Extractor interface {
	Extract(ctx context.Context, system, user string) (lead.Analysis, error)
}
