package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/psqlbuilder"
)

// Repository репозиторий для работы с клиентами студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreate находит клиента по email или создает нового.
// Имя и телефон существующего клиента обновляются данными из запроса -
// клиент вводит контакты при каждом бронировании, свежие данные точнее.
func (r *Repository) FindOrCreate(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "email", "phone").
		Values(client.Name, client.Email, client.Phone).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - execute upsert: %v", ErrExecQuery, err)
	}

	return client, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "notes", "created_at").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var client domain.Client
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Notes, &client.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	return &client, nil
}

// GetByEmail получает клиента по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "notes", "created_at").
		From("clients").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var client domain.Client
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Notes, &client.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan client: %v", ErrScanRow, err)
	}

	return &client, nil
}
