// ABOUTME: Completion service contract used by every model-backed stage
// ABOUTME: Abstracts the llm.Client for testability
package core

import (
	"context"

	"github.com/abzhanov/npa-consultant/internal/llm"
)

// Completer is the completion-service contract the pipeline stages depend
// on. *llm.Client satisfies it; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, msgs []llm.Message, opts llm.Options) (string, error)
	CompleteStream(ctx context.Context, msgs []llm.Message, opts llm.Options) (<-chan string, error)
}
