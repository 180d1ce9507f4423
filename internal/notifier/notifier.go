// Package notifier delivers alert messages to an outside address.
package notifier

import "context"

// Notifier never reports delivery failures to the caller; implementations log them.
type Notifier interface {
	Notify(ctx context.Context, subject, body, to string)
}

type Noop struct{}

func (Noop) Notify(context.Context, string, string, string) {}
