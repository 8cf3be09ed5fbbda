package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventApprovedEmailData holds data for the approval email sent to the owning speaker.
type EventApprovedEmailData struct {
	Email            string
	SpeakerName      string
	EventName        string
	BookingStartDate string
}

// EventRejectedEmailData holds data for the rejection email sent to the owning speaker.
type EventRejectedEmailData struct {
	Email       string
	SpeakerName string
	EventName   string
	Reason      string
}

// EmailService defines the contract for sending domain-level emails. All
// calls are best-effort from the lifecycle engine's point of view.
type EmailService interface {
	SendEventApproved(ctx context.Context, data *EventApprovedEmailData) error
	SendEventRejected(ctx context.Context, data *EventRejectedEmailData) error
}
