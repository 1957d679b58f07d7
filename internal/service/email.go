package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendgridChannel delivers rendered messages to the shop outbox over
// email. The recipient handle travels in the subject so the operator
// can forward the body through the customer's messaging app.
type sendgridChannel struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	outbox    string
}

func NewSendGridChannel(apiKey, fromName, fromEmail, outbox string) MessageChannel {
	return &sendgridChannel{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		outbox:    outbox,
	}
}

func (c *sendgridChannel) Send(ctx context.Context, recipient, subject, body string) error {
	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail("", c.outbox)
	msg := mail.NewSingleEmail(from, fmt.Sprintf("%s [to %s]", subject, recipient), to, body, body)

	resp, err := c.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status %d", resp.StatusCode)
	}
	return nil
}
