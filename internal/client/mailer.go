package client

import (
	"context"
	"fmt"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/config"

	"github.com/wneessen/go-mail"
)

type TemplateKind string

const (
	MailOrderPlaced      TemplateKind = "order-placed"      // to admin
	MailPaymentConfirmed TemplateKind = "payment-confirmed" // to customer
	MailOrderDelivered   TemplateKind = "order-delivered"   // to customer
	MailOTPCode          TemplateKind = "otp-code"          // to customer
)

// Mailer is best-effort: callers log failures and move on, the primary
// operation never depends on a send succeeding.
type Mailer interface {
	Send(ctx context.Context, kind TemplateKind, recipient string, data map[string]string) error
}

type smtpMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg *config.SMTP) (Mailer, error) {
	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &smtpMailer{client: c, from: cfg.From}, nil
}

func (m *smtpMailer) Send(ctx context.Context, kind TemplateKind, recipient string, data map[string]string) error {
	subject, body := renderTemplate(kind, data)

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s mail: %w", kind, err)
	}

	return nil
}

func renderTemplate(kind TemplateKind, data map[string]string) (subject, body string) {
	switch kind {
	case MailOrderPlaced:
		return fmt.Sprintf("New order %s", data["orderNumber"]),
			fmt.Sprintf("Order %s was placed by %s for %s.",
				data["orderNumber"], data["customer"], data["total"])
	case MailPaymentConfirmed:
		return fmt.Sprintf("Payment confirmed for order %s", data["orderNumber"]),
			fmt.Sprintf("Hi %s, we have received your payment of %s for order %s. We will start preparing it right away.",
				data["firstName"], data["total"], data["orderNumber"])
	case MailOrderDelivered:
		return fmt.Sprintf("Your order %s has been delivered", data["orderNumber"]),
			fmt.Sprintf("Hi %s, order %s was delivered via %s. %s",
				data["firstName"], data["orderNumber"], data["shippingProvider"], data["notes"])
	case MailOTPCode:
		return "Your order lookup code",
			fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes.", data["code"])
	}
	return "Notification", ""
}
