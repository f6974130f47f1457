package client

import (
	"context"
	"fmt"

	"digital-storefront/internal/config"

	"github.com/resend/resend-go/v2"
)

type Email struct {
	To      string
	Subject string
	HTML    string
}

type EmailClient interface {
	Send(ctx context.Context, email *Email) error
}

type resendClientImpl struct {
	client *resend.Client
	from   string
}

func NewEmailClient(resendCfg *config.Resend) EmailClient {
	return &resendClientImpl{
		client: resend.NewClient(resendCfg.APIKey),
		from:   fmt.Sprintf("Support <%s>", resendCfg.SenderEmail),
	}
}

func (c *resendClientImpl) Send(ctx context.Context, email *Email) error {
	_, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send email: %w", err)
	}
	return nil
}
