package promorepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
        SELECT code, discount_percent, expires_at, uses_left
        FROM promo_codes
        WHERE code = $1
    `
	var promo domain.PromoCode
	err := r.db.QueryRow(ctx, query, code).Scan(&promo.Code, &promo.DiscountPercent, &promo.ExpiresAt, &promo.UsesLeft)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find promo code", zap.Error(err))
		return nil, err
	}
	return &promo, nil
}

// Redeem takes one use of a valid code in a single statement, so concurrent
// redemptions of the last use are serialized by the row lock. It reports
// false when the code is unknown, expired or exhausted.
func (r *Repository) Redeem(ctx context.Context, code string, now time.Time) (int, bool, error) {
	query := `
        UPDATE promo_codes
        SET uses_left = uses_left - 1
        WHERE code = $1
          AND expires_at >= $2
          AND (uses_left IS NULL OR uses_left > 0)
        RETURNING discount_percent
    `
	var percent int
	err := r.db.QueryRow(ctx, query, code, now).Scan(&percent)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		zap.L().Error("can't redeem promo code", zap.Error(err))
		return 0, false, err
	}
	return percent, true, nil
}
