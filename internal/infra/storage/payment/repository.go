package payment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/psqlbuilder"
)

// Repository журнал созданных платежных намерений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет строку журнала платежей
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("payment_intent_id", "amount_cents", "status", "client_email", "category").
		Values(p.PaymentIntentID, p.AmountCents, p.Status, p.ClientEmail, p.Category).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// ListByEmail получает платежи клиента по email (новые первыми)
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "payment_intent_id", "amount_cents", "status", "client_email", "category", "created_at").
		From("payments").
		Where(squirrel.Eq{"client_email": email}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.ID, &p.PaymentIntentID, &p.AmountCents, &p.Status, &p.ClientEmail, &p.Category, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmail - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
