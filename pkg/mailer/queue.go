package mailer

import (
	"context"

	"github.com/aryawidjaya/user-accounts/pkg/helpers"
)

// QueueNotifier satisfies the application Notifier contract by enqueueing
// an EmailJob; the email worker picks it up and delivers through Mailgun.
// A broker failure surfaces as an error for the caller to log, nothing
// more.
type QueueNotifier struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueNotifier(pub *helpers.RabbitPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) Send(ctx context.Context, to, subject, body string) error {
	job := EmailJob{
		To:       to,
		Subject:  subject,
		Text:     body,
		Template: "welcome",
		Data: map[string]any{
			"Email": to,
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}
