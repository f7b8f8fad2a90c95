package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const selectUsers = `
        SELECT id, telegram_id, full_name, phone_number, accepted_policy, first_order_paid, created_at
        FROM users
`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.TelegramID, &user.FullName, &user.PhoneNumber,
		&user.AcceptedPolicy, &user.FirstOrderPaid, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, selectUsers+"WHERE id = $1", id)
}

func (repo *Repository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return repo.findOne(ctx, selectUsers+"WHERE telegram_id = $1", telegramID)
}

// Upsert creates the user or refreshes the profile fields of an existing one.
func (repo *Repository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (telegram_id, full_name, phone_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO UPDATE
		SET full_name = EXCLUDED.full_name, phone_number = EXCLUDED.phone_number
		RETURNING id, accepted_policy, first_order_paid, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.TelegramID, user.FullName, user.PhoneNumber).
		Scan(&user.ID, &user.AcceptedPolicy, &user.FirstOrderPaid, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) AcceptPolicy(ctx context.Context, id int) (bool, error) {
	tag, err := repo.db.Exec(ctx, "UPDATE users SET accepted_policy = true WHERE id = $1", id)
	if err != nil {
		zap.L().Error("can't accept policy", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFirstOrderPaid flips first_order_paid once. It reports false when the
// flag was already set.
func (repo *Repository) MarkFirstOrderPaid(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE users
		SET first_order_paid = true
		WHERE id = $1 AND first_order_paid = false
	`
	tag, err := repo.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't mark first order paid", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
