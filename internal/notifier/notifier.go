package notifier

import "context"

// Notifier delivers a message to a recipient. The identity core treats
// delivery as a synchronous call; retry and timeout policy belong to the
// implementation.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
