package application

import "context"

// Notifier is the outbound notification contract. Use cases treat every
// failure mode as non-fatal: a notification that cannot be sent is logged
// and the transactional outcome stands.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
