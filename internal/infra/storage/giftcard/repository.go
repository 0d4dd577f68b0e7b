package giftcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// Repository репозиторий подарочных карт
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подарочных карт
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает подарочную карту. Коллизия кода (уникальный индекс)
// возвращается как ErrDuplicateCode - вызывающая сторона перегенерирует код.
func (r *Repository) Create(ctx context.Context, card *domain.GiftCard) (*domain.GiftCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("gift_cards").
		Columns("code", "to_name", "from_name", "amount_cents", "balance_cents", "message", "email", "status", "payment_intent_id").
		Values(card.Code, card.ToName, card.FromName, card.AmountCents, card.BalanceCents, card.Message, card.Email, card.Status, card.PaymentIntentID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return card, nil
}

// GetByCode получает карту по коду. Внутри транзакции строка блокируется
// (FOR UPDATE) - защита от двойного списания остатка.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.GiftCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "code", "to_name", "from_name", "amount_cents", "balance_cents",
		"message", "email", "status", "payment_intent_id", "created_at",
	).
		From("gift_cards").
		Where(squirrel.Eq{"code": code})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var card domain.GiftCard
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.ID,
		&card.Code,
		&card.ToName,
		&card.FromName,
		&card.AmountCents,
		&card.BalanceCents,
		&card.Message,
		&card.Email,
		&card.Status,
		&card.PaymentIntentID,
		&card.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGiftCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan gift card: %v", ErrScanRow, err)
	}

	return &card, nil
}

// Redeem списывает amountCents с остатка карты. Условие balance_cents >= amount
// в самом UPDATE защищает от списания в минус даже без блокировки строки.
// Обнуленный остаток переводит карту в статус Depleted.
func (r *Repository) Redeem(ctx context.Context, code string, amountCents int64) (*domain.GiftCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("gift_cards").
		Set("balance_cents", squirrel.Expr("balance_cents - ?", amountCents)).
		Set("status", squirrel.Expr("CASE WHEN balance_cents - ? <= 0 THEN ? ELSE ? END",
			amountCents, domain.GiftCardDepleted, domain.GiftCardActive)).
		Where(squirrel.Eq{"code": code, "status": domain.GiftCardActive}).
		Where(squirrel.GtOrEq{"balance_cents": amountCents}).
		Suffix("RETURNING id, code, to_name, from_name, amount_cents, balance_cents, message, email, status, payment_intent_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Redeem - build update query: %v", ErrBuildQuery, err)
	}

	var card domain.GiftCard
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.ID,
		&card.Code,
		&card.ToName,
		&card.FromName,
		&card.AmountCents,
		&card.BalanceCents,
		&card.Message,
		&card.Email,
		&card.Status,
		&card.PaymentIntentID,
		&card.CreatedAt,
	)
	if err == sql.ErrNoRows {
		// Либо карты нет, либо остатка не хватило - различаем отдельным чтением
		if _, getErr := r.GetByCode(ctx, code); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Redeem - scan gift card: %v", ErrScanRow, err)
	}

	return &card, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
