package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventmanagement/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventApproved sends the approval email using the "event_approved" template.
func (s *emailService) SendEventApproved(ctx context.Context, data *domain.EventApprovedEmailData) error {
	if data == nil {
		return fmt.Errorf("event approved data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_approved", data)
	if err != nil {
		return fmt.Errorf("failed to render event_approved template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send approval email: %w", err)
	}
	s.logger.InfoContext(ctx, "approval email sent", "to", data.Email)
	return nil
}

// SendEventRejected sends the rejection email using the "event_rejected" template.
func (s *emailService) SendEventRejected(ctx context.Context, data *domain.EventRejectedEmailData) error {
	if data == nil {
		return fmt.Errorf("event rejected data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_rejected", data)
	if err != nil {
		return fmt.Errorf("failed to render event_rejected template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rejection email: %w", err)
	}
	s.logger.InfoContext(ctx, "rejection email sent", "to", data.Email)
	return nil
}
