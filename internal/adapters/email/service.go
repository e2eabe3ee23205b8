package email

import (
	"context"
	"fmt"

	"confdesk/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that renders embedded templates and
// sends them through the given mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send("registration_confirmation", data.Email, data)
}

func (s *emailService) SendPaperDecision(ctx context.Context, data *domain.PaperDecisionEmailData) error {
	return s.send("paper_decision", data.Email, data)
}

func (s *emailService) send(templateName, to string, data any) error {
	subject, html, text, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("render %s email: %w", templateName, err)
	}
	if err := s.mailer.Send(to, subject, html, text); err != nil {
		return fmt.Errorf("send %s email: %w", templateName, err)
	}
	return nil
}
