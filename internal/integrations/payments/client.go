package payments

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// Client клиент платежного провайдера (Stripe).
// Без API-ключа работает в режиме симуляции: намерения получают
// идентификатор pi_<hex> и статус "simulated", деньги не двигаются.
// Режим предназначен для разработки и стендов без ключа.
type Client struct {
	apiKey string
	log    Logger
}

// NewClient создает новый экземпляр платежного клиента
func NewClient(apiKey string, log Logger) *Client {
	if apiKey == "" {
		log.Warn("payments: no API key configured, running in simulated mode")
	} else {
		stripe.Key = apiKey
	}
	return &Client{apiKey: apiKey, log: log}
}

// Simulated сообщает, работает ли клиент без реального провайдера
func (c *Client) Simulated() bool {
	return c.apiKey == ""
}

// CreateIntent создает платежное намерение на amountCents центов
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, email, description string) (*Intent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amountCents)
	}

	if c.Simulated() {
		return c.simulateIntent(amountCents, description)
	}

	params := &stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(email),
		Description:  stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.log.Error("payments: CreateIntent failed for amount=%d: %v", amountCents, err)
		return nil, fmt.Errorf("%w: %v", ErrIntentFailed, err)
	}

	c.log.Info("payments: created intent %s amount=%d status=%s", pi.ID, amountCents, pi.Status)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  amountCents,
	}, nil
}

// simulateIntent выдает фиктивное намерение в формате провайдера
func (c *Client) simulateIntent(amountCents int64, description string) (*Intent, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: generate simulated id: %v", ErrIntentFailed, err)
	}

	id := "pi_" + hex.EncodeToString(buf)
	c.log.Info("payments: simulated intent %s amount=%d (%s)", id, amountCents, description)

	return &Intent{
		ID:          id,
		Status:      simulatedStatus,
		AmountCents: amountCents,
	}, nil
}
