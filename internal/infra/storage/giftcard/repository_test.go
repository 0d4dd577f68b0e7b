package giftcard

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

var cardColumns = []string{
	"id", "code", "to_name", "from_name", "amount_cents", "balance_cents",
	"message", "email", "status", "payment_intent_id", "created_at",
}

func cardRow(balanceCents int64, status domain.GiftCardStatus) *sqlmock.Rows {
	return sqlmock.NewRows(cardColumns).AddRow(
		int64(1), "KQ-TESTCODE", "Mia", "Ava", int64(5000), balanceCents,
		nil, "ava@example.com", string(status), nil, time.Now(),
	)
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO gift_cards`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	created, err := repo.Create(context.Background(), &domain.GiftCard{
		Code:         "KQ-TESTCODE",
		ToName:       "Mia",
		FromName:     "Ava",
		AmountCents:  5000,
		BalanceCents: 5000,
		Email:        "ava@example.com",
		Status:       domain.GiftCardActive,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO gift_cards`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "gift_cards_code_key"})

	_, err := repo.Create(context.Background(), &domain.GiftCard{Code: "KQ-TESTCODE"})

	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM gift_cards`).
		WithArgs("KQ-TESTCODE").
		WillReturnRows(cardRow(4200, domain.GiftCardActive))

	card, err := repo.GetByCode(context.Background(), "KQ-TESTCODE")

	require.NoError(t, err)
	assert.Equal(t, int64(4200), card.BalanceCents)
	assert.Equal(t, domain.GiftCardActive, card.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCodeNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM gift_cards`).
		WillReturnRows(sqlmock.NewRows(cardColumns))

	_, err := repo.GetByCode(context.Background(), "KQ-MISSING1")

	assert.ErrorIs(t, err, ErrGiftCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeem(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE gift_cards SET`).
		WillReturnRows(cardRow(2000, domain.GiftCardActive))

	card, err := repo.Redeem(context.Background(), "KQ-TESTCODE", 3000)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), card.BalanceCents)
	assert.Equal(t, domain.GiftCardActive, card.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemDepletes(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE gift_cards SET`).
		WillReturnRows(cardRow(0, domain.GiftCardDepleted))

	card, err := repo.Redeem(context.Background(), "KQ-TESTCODE", 5000)

	require.NoError(t, err)
	assert.Equal(t, int64(0), card.BalanceCents)
	assert.Equal(t, domain.GiftCardDepleted, card.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemInsufficientBalance(t *testing.T) {
	repo, mock := newMock(t)

	// Условный UPDATE не нашел строку, контрольное чтение карту находит
	mock.ExpectQuery(`UPDATE gift_cards SET`).
		WillReturnRows(sqlmock.NewRows(cardColumns))
	mock.ExpectQuery(`SELECT .+ FROM gift_cards`).
		WillReturnRows(cardRow(1000, domain.GiftCardActive))

	_, err := repo.Redeem(context.Background(), "KQ-TESTCODE", 5000)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemNotFound(t *testing.T) {
	repo, mock := newMock(t)

	// Условный UPDATE не нашел строку, контрольное чтение тоже пустое
	mock.ExpectQuery(`UPDATE gift_cards SET`).
		WillReturnRows(sqlmock.NewRows(cardColumns))
	mock.ExpectQuery(`SELECT .+ FROM gift_cards`).
		WillReturnRows(sqlmock.NewRows(cardColumns))

	_, err := repo.Redeem(context.Background(), "KQ-MISSING1", 100)

	assert.ErrorIs(t, err, ErrGiftCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
