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

// RegistrationEmailData holds data for the registration confirmation email.
type RegistrationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Plan       string
	Price      int64
}

// PaperDecisionEmailData holds data for the paper accept/reject email.
type PaperDecisionEmailData struct {
	Email      string
	Name       string
	PaperTitle string
	Status     string
}

// EmailService defines the contract for sending domain-level emails.
// Implementations are best-effort: callers log failures and never fail the
// request that triggered the email.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
	SendPaperDecision(ctx context.Context, data *PaperDecisionEmailData) error
}
