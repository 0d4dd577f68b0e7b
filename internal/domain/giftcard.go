package domain

import "time"

// GiftCardStatus статус подарочной карты
type GiftCardStatus string

const (
	GiftCardActive   GiftCardStatus = "Active"
	GiftCardDepleted GiftCardStatus = "Depleted"
)

// GiftCard represents a purchased gift card with a running balance
type GiftCard struct {
	ID              int64
	Code            string
	ToName          string
	FromName        string
	AmountCents     int64
	BalanceCents    int64
	Message         *string
	Email           string
	Status          GiftCardStatus
	PaymentIntentID *string
	CreatedAt       time.Time
}

// CanRedeem reports whether amountCents can be deducted from the balance
func (g *GiftCard) CanRedeem(amountCents int64) bool {
	return g.Status == GiftCardActive && amountCents > 0 && g.BalanceCents >= amountCents
}

// PaymentCategory категория платежа
type PaymentCategory string

const (
	PaymentCategoryDeposit  PaymentCategory = "deposit"
	PaymentCategoryGiftCard PaymentCategory = "gift_card"
)

// Payment is a ledger row for a created payment intent
type Payment struct {
	ID              int64
	PaymentIntentID string
	AmountCents     int64
	Status          string
	ClientEmail     string
	Category        PaymentCategory
	CreatedAt       time.Time
}
