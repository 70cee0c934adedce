package queue

import "context"

// Client hands scored evaluations to the phrasing pipeline. When no queue
// is configured the evaluations service phrases inline instead.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
