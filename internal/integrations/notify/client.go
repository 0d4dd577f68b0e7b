package notify

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client отправляет уведомления клиентам студии по email (SendGrid)
// и SMS (Twilio). Несконфигурированный канал молча пропускается -
// уведомления не являются критичным путем бронирования.
type Client struct {
	cfg   Config
	email *sendgrid.Client
	sms   *twilio.RestClient
	log   Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(cfg Config, log Logger) *Client {
	c := &Client{cfg: cfg, log: log}

	if cfg.SendGridAPIKey != "" {
		c.email = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	} else {
		log.Warn("notify: SendGrid API key not configured, email channel disabled")
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		c.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   cfg.TwilioAccountSID,
			Password:   cfg.TwilioAuthToken,
			AccountSid: cfg.TwilioAccountSID,
		})
	} else {
		log.Warn("notify: Twilio credentials not configured, SMS channel disabled")
	}

	return c
}

// SendEmail отправляет письмо через SendGrid
func (c *Client) SendEmail(toEmail, toName, subject, plainText, htmlContent string) error {
	if c.email == nil {
		return ErrChannelDisabled
	}

	from := mail.NewEmail(c.cfg.FromName, c.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	resp, err := c.email.Send(message)
	if err != nil {
		return fmt.Errorf("%w: email to %s: %v", ErrSendFailed, toEmail, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: email to %s: status %d: %s", ErrSendFailed, toEmail, resp.StatusCode, resp.Body)
	}

	c.log.Info("notify: email sent to %s (subject=%q)", toEmail, subject)
	return nil
}

// SendSMS отправляет SMS через Twilio. Номер должен быть в формате E.164.
func (c *Client) SendSMS(toNumber, body string) error {
	if c.sms == nil {
		return ErrChannelDisabled
	}

	if !strings.HasPrefix(toNumber, "+") {
		c.log.Warn("notify: destination number %q is not E.164, delivery may fail", toNumber)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(c.cfg.TwilioFromNumber)
	params.SetBody(body)

	resp, err := c.sms.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: sms to %s: %v", ErrSendFailed, toNumber, err)
	}

	if resp != nil && resp.Sid != nil {
		c.log.Info("notify: sms sent to %s (sid=%s)", toNumber, *resp.Sid)
	}
	return nil
}
