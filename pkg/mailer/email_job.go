package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for the email
// worker. Text is the fallback body; Template selects an HTML rendering
// with Data as its context.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
