package ai

import "context"

// Client is the completion gateway. An empty system instruction means the
// request carries only the user message.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
