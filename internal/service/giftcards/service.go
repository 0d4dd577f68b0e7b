package giftcards

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/BreezDev/kimq/internal/domain"
	giftcardRepo "github.com/BreezDev/kimq/internal/infra/storage/giftcard"
)

// codeAlphabet символы кода подарочной карты
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts попытки перегенерации кода при коллизии
const maxCodeAttempts = 5

// Service сервис подарочных карт: покупка, проверка остатка, списание
type Service struct {
	giftcardRepo GiftCardRepository
	paymentRepo  PaymentRepository
	payments     PaymentsClient
	notify       NotifyClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса подарочных карт
func NewService(
	giftcardRepo GiftCardRepository,
	paymentRepo PaymentRepository,
	payments PaymentsClient,
	notify NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		giftcardRepo: giftcardRepo,
		paymentRepo:  paymentRepo,
		payments:     payments,
		notify:       notify,
		txManager:    txManager,
		logger:       logger,
	}
}

// PurchaseRequest данные покупки подарочной карты
type PurchaseRequest struct {
	ToName      string
	FromName    string
	AmountCents int64
	Message     *string
	Email       string
}

// Purchase покупает подарочную карту: платежное намерение, карта со
// сгенерированным кодом, строка журнала платежей, письмо с кодом.
func (s *Service) Purchase(ctx context.Context, req *PurchaseRequest) (*domain.GiftCard, error) {
	s.logger.Info("Purchase: gift card for %s, amount=%d", req.Email, req.AmountCents)

	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	intent, err := s.payments.CreateIntent(ctx, req.AmountCents, req.Email, "Gift card purchase")
	if err != nil {
		s.logger.Error("Purchase: payment intent failed for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	var card *domain.GiftCard
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.createWithFreshCode(ctx, req, intent.ID)
		if err != nil {
			return err
		}
		card = created

		_, err = s.paymentRepo.Create(ctx, &domain.Payment{
			PaymentIntentID: intent.ID,
			AmountCents:     req.AmountCents,
			Status:          intent.Status,
			ClientEmail:     req.Email,
			Category:        domain.PaymentCategoryGiftCard,
		})
		return err
	})
	if err != nil {
		s.logger.Error("Purchase: failed to persist gift card for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Purchase - persist: %v", ErrInternal, err)
	}

	s.logger.Info("Purchase: created gift card id=%d code=%s", card.ID, card.Code)
	s.sendGiftCardEmail(card)

	return card, nil
}

// GetByCode получает карту по коду для проверки остатка
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.GiftCard, error) {
	card, err := s.giftcardRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, giftcardRepo.ErrGiftCardNotFound) {
			s.logger.Warn("GetByCode: gift card %s not found", code)
			return nil, ErrGiftCardNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return card, nil
}

// Redeem списывает amountCents с карты внутри сериализуемой транзакции
func (s *Service) Redeem(ctx context.Context, code string, amountCents int64) (*domain.GiftCard, error) {
	s.logger.Info("Redeem: code=%s amount=%d", code, amountCents)

	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	var card *domain.GiftCard
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		redeemed, err := s.giftcardRepo.Redeem(ctx, code, amountCents)
		if err != nil {
			return err
		}
		card = redeemed
		return nil
	})
	if err != nil {
		if errors.Is(err, giftcardRepo.ErrGiftCardNotFound) {
			return nil, ErrGiftCardNotFound
		}
		if errors.Is(err, giftcardRepo.ErrInsufficientBalance) {
			s.logger.Warn("Redeem: insufficient balance on code=%s for amount=%d", code, amountCents)
			return nil, ErrInsufficientBalance
		}
		s.logger.Error("Redeem: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: Redeem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Redeem: code=%s new balance=%d status=%s", code, card.BalanceCents, card.Status)
	return card, nil
}

// createWithFreshCode создает карту, перегенерируя код при коллизии
func (s *Service) createWithFreshCode(ctx context.Context, req *PurchaseRequest, intentID string) (*domain.GiftCard, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}

		card := &domain.GiftCard{
			Code:            code,
			ToName:          req.ToName,
			FromName:        req.FromName,
			AmountCents:     req.AmountCents,
			BalanceCents:    req.AmountCents,
			Message:         req.Message,
			Email:           req.Email,
			Status:          domain.GiftCardActive,
			PaymentIntentID: &intentID,
		}

		created, err := s.giftcardRepo.Create(ctx, card)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, giftcardRepo.ErrDuplicateCode) {
			return nil, err
		}
		s.logger.Warn("createWithFreshCode: code collision on %s, retrying", code)
	}
	return nil, fmt.Errorf("code generation exhausted after %d attempts", maxCodeAttempts)
}

// GenerateCode генерирует код карты вида KQ-XXXXXXXX (A-Z, 0-9)
func GenerateCode() (string, error) {
	buf := make([]byte, domain.GiftCardCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %v", err)
	}

	code := make([]byte, domain.GiftCardCodeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return domain.GiftCardCodePrefix + string(code), nil
}

// sendGiftCardEmail отправляет письмо с кодом карты (вне критичного пути)
func (s *Service) sendGiftCardEmail(card *domain.GiftCard) {
	subject := fmt.Sprintf("Your gift card from %s", card.FromName)
	body := fmt.Sprintf("Hi %s,\n\n%s sent you a gift card for $%.2f!\n\nYour code: %s\n",
		card.ToName, card.FromName, float64(card.AmountCents)/100, card.Code)
	if card.Message != nil && *card.Message != "" {
		body += fmt.Sprintf("\nMessage: %s\n", *card.Message)
	}

	if err := s.notify.SendEmail(card.Email, card.ToName, subject, body, ""); err != nil {
		s.logger.Warn("sendGiftCardEmail: failed for gift card id=%d: %v", card.ID, err)
	}
}
