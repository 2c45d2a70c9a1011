package service

import "context"

// ContextBuilder is an interface that abstracts grounding-context assembly
// This allows for easier testing and mocking
type ContextBuilder interface {
	BuildContext(ctx context.Context, home, away, league string) string
}
