package giftcards

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
	giftcardRepo "github.com/BreezDev/kimq/internal/infra/storage/giftcard"
	"github.com/BreezDev/kimq/internal/integrations/payments"
)

type fakeGiftCardRepo struct {
	cards         map[string]*domain.GiftCard
	duplicateHits int
	nextID        int64
}

func newFakeGiftCardRepo() *fakeGiftCardRepo {
	return &fakeGiftCardRepo{cards: make(map[string]*domain.GiftCard)}
}

func (f *fakeGiftCardRepo) Create(_ context.Context, card *domain.GiftCard) (*domain.GiftCard, error) {
	if f.duplicateHits > 0 {
		f.duplicateHits--
		return nil, giftcardRepo.ErrDuplicateCode
	}
	f.nextID++
	card.ID = f.nextID
	f.cards[card.Code] = card
	return card, nil
}

func (f *fakeGiftCardRepo) GetByCode(_ context.Context, code string) (*domain.GiftCard, error) {
	card, ok := f.cards[code]
	if !ok {
		return nil, giftcardRepo.ErrGiftCardNotFound
	}
	return card, nil
}

func (f *fakeGiftCardRepo) Redeem(_ context.Context, code string, amountCents int64) (*domain.GiftCard, error) {
	card, ok := f.cards[code]
	if !ok {
		return nil, giftcardRepo.ErrGiftCardNotFound
	}
	if !card.CanRedeem(amountCents) {
		return nil, giftcardRepo.ErrInsufficientBalance
	}
	card.BalanceCents -= amountCents
	if card.BalanceCents == 0 {
		card.Status = domain.GiftCardDepleted
	}
	return card, nil
}

type fakePaymentRepo struct {
	records []*domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	p.ID = int64(len(f.records) + 1)
	f.records = append(f.records, p)
	return p, nil
}

type fakePayments struct {
	err error
}

func (f *fakePayments) CreateIntent(_ context.Context, amountCents int64, _, _ string) (*payments.Intent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &payments.Intent{ID: "pi_gift", Status: "simulated", AmountCents: amountCents}, nil
}

type fakeNotify struct {
	emails int
}

func (f *fakeNotify) SendEmail(_, _, _, _, _ string) error {
	f.emails++
	return nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(cards *fakeGiftCardRepo, pay *fakePayments, notify *fakeNotify) (*Service, *fakePaymentRepo) {
	paymentLog := &fakePaymentRepo{}
	return NewService(cards, paymentLog, pay, notify, passTxManager{}, nopLogger{}), paymentLog
}

func purchaseRequest() *PurchaseRequest {
	return &PurchaseRequest{
		ToName:      "Mia",
		FromName:    "Ava",
		AmountCents: 5000,
		Email:       "ava@example.com",
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(code, domain.GiftCardCodePrefix))
		suffix := strings.TrimPrefix(code, domain.GiftCardCodePrefix)
		assert.Len(t, suffix, domain.GiftCardCodeLength)
		for _, r := range suffix {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
	// Коллизии на сотне кодов из 36^8 значений практически исключены
	assert.Len(t, seen, 100)
}

func TestPurchase(t *testing.T) {
	cards := newFakeGiftCardRepo()
	notify := &fakeNotify{}
	svc, paymentLog := newTestService(cards, &fakePayments{}, notify)

	card, err := svc.Purchase(context.Background(), purchaseRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5000), card.AmountCents)
	assert.Equal(t, int64(5000), card.BalanceCents)
	assert.Equal(t, domain.GiftCardActive, card.Status)
	assert.True(t, strings.HasPrefix(card.Code, domain.GiftCardCodePrefix))
	require.NotNil(t, card.PaymentIntentID)
	assert.Equal(t, "pi_gift", *card.PaymentIntentID)

	// Строка журнала платежей с категорией gift_card
	require.Len(t, paymentLog.records, 1)
	assert.Equal(t, domain.PaymentCategoryGiftCard, paymentLog.records[0].Category)
	assert.Equal(t, "pi_gift", paymentLog.records[0].PaymentIntentID)

	assert.Equal(t, 1, notify.emails)
}

func TestPurchaseInvalidInput(t *testing.T) {
	svc, _ := newTestService(newFakeGiftCardRepo(), &fakePayments{}, &fakeNotify{})

	req := purchaseRequest()
	req.AmountCents = 0
	_, err := svc.Purchase(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = purchaseRequest()
	req.Email = ""
	_, err = svc.Purchase(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPurchasePaymentFailed(t *testing.T) {
	pay := &fakePayments{err: payments.ErrIntentFailed}
	cards := newFakeGiftCardRepo()
	svc, _ := newTestService(cards, pay, &fakeNotify{})

	_, err := svc.Purchase(context.Background(), purchaseRequest())

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, cards.cards)
}

func TestPurchaseRetriesOnCodeCollision(t *testing.T) {
	cards := newFakeGiftCardRepo()
	cards.duplicateHits = 2
	svc, _ := newTestService(cards, &fakePayments{}, &fakeNotify{})

	card, err := svc.Purchase(context.Background(), purchaseRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, card.Code)
}

func TestRedeem(t *testing.T) {
	cards := newFakeGiftCardRepo()
	cards.cards["KQ-TESTCODE"] = &domain.GiftCard{
		ID:           1,
		Code:         "KQ-TESTCODE",
		AmountCents:  5000,
		BalanceCents: 5000,
		Status:       domain.GiftCardActive,
	}
	svc, _ := newTestService(cards, &fakePayments{}, &fakeNotify{})

	card, err := svc.Redeem(context.Background(), "KQ-TESTCODE", 3000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), card.BalanceCents)
	assert.Equal(t, domain.GiftCardActive, card.Status)

	// Списание в ноль переводит карту в Depleted
	card, err = svc.Redeem(context.Background(), "KQ-TESTCODE", 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), card.BalanceCents)
	assert.Equal(t, domain.GiftCardDepleted, card.Status)

	// Дальнейшее списание невозможно
	_, err = svc.Redeem(context.Background(), "KQ-TESTCODE", 100)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	cards := newFakeGiftCardRepo()
	cards.cards["KQ-TESTCODE"] = &domain.GiftCard{
		Code:         "KQ-TESTCODE",
		BalanceCents: 1000,
		Status:       domain.GiftCardActive,
	}
	svc, _ := newTestService(cards, &fakePayments{}, &fakeNotify{})

	_, err := svc.Redeem(context.Background(), "KQ-TESTCODE", 5000)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestRedeemNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeGiftCardRepo(), &fakePayments{}, &fakeNotify{})

	_, err := svc.Redeem(context.Background(), "KQ-MISSING1", 100)

	assert.ErrorIs(t, err, ErrGiftCardNotFound)
}

func TestRedeemInvalidAmount(t *testing.T) {
	svc, _ := newTestService(newFakeGiftCardRepo(), &fakePayments{}, &fakeNotify{})

	_, err := svc.Redeem(context.Background(), "KQ-TESTCODE", 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByCode(t *testing.T) {
	cards := newFakeGiftCardRepo()
	cards.cards["KQ-TESTCODE"] = &domain.GiftCard{Code: "KQ-TESTCODE", BalanceCents: 4200, Status: domain.GiftCardActive}
	svc, _ := newTestService(cards, &fakePayments{}, &fakeNotify{})

	card, err := svc.GetByCode(context.Background(), "KQ-TESTCODE")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), card.BalanceCents)

	_, err = svc.GetByCode(context.Background(), "KQ-MISSING1")
	assert.ErrorIs(t, err, ErrGiftCardNotFound)
}
