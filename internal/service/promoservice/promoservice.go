package promoservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repo interface {
	FindByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	Redeem(ctx context.Context, code string, now time.Time) (int, bool, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// Result is an amount after a percentage discount.
type Result struct {
	Amount   decimal.Decimal
	Discount decimal.Decimal
	Percent  int
	Applied  bool
}

type Service struct {
	repo              Repo
	users             UserRepo
	clock             clock.Clock
	firstOrderPercent int
}

func New(repo Repo, users UserRepo, clk clock.Clock, firstOrderPercent int) *Service {
	return &Service{
		repo:              repo,
		users:             users,
		clock:             clk,
		firstOrderPercent: firstOrderPercent,
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ApplyFirstOrderDiscount gives the first-order percentage to users who have
// not paid for any order yet. Otherwise amount is returned unchanged.
func (s *Service) ApplyFirstOrderDiscount(ctx context.Context, userID int, amount decimal.Decimal) (Result, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if user == nil {
		return Result{}, domain.NewNotFoundError("user", userID)
	}
	if user.FirstOrderPaid {
		return Result{Amount: amount, Discount: decimal.Zero}, nil
	}

	newAmount, discount := pricing.Percent(amount, s.firstOrderPercent)
	return Result{Amount: newAmount, Discount: discount, Percent: s.firstOrderPercent, Applied: true}, nil
}

// RedeemPromo consumes one use of code and applies its percentage. Run it
// inside the unit of work that persists the order so the use is returned
// if the order is not saved.
func (s *Service) RedeemPromo(ctx context.Context, code string, amount decimal.Decimal) (Result, error) {
	code = NormalizeCode(code)
	if code == "" {
		return Result{}, domain.NewPromoInvalidError(code, domain.PromoNotFound)
	}

	now := s.clock.Now()
	percent, ok, err := s.repo.Redeem(ctx, code, now)
	if err != nil {
		return Result{}, fmt.Errorf("redeem promo code: %w", err)
	}
	if !ok {
		return Result{}, s.rejection(ctx, code, now)
	}

	newAmount, discount := pricing.Percent(amount, percent)
	zap.L().Info("promo code redeemed", zap.String("code", code), zap.Int("percent", percent))
	return Result{Amount: newAmount, Discount: discount, Percent: percent, Applied: true}, nil
}

// CheckPromo validates code without consuming a use.
func (s *Service) CheckPromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	code = NormalizeCode(code)
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := validate(promo, code, s.clock.Now()); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *Service) rejection(ctx context.Context, code string, now time.Time) error {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := validate(promo, code, now); err != nil {
		return err
	}
	// valid on re-read: the last use went to a concurrent redemption
	return domain.NewPromoInvalidError(code, domain.PromoExhausted)
}

func validate(promo *domain.PromoCode, code string, now time.Time) error {
	switch {
	case promo == nil:
		return domain.NewPromoInvalidError(code, domain.PromoNotFound)
	case promo.ExpiresAt.Before(now):
		return domain.NewPromoInvalidError(code, domain.PromoExpired)
	case promo.UsesLeft != nil && *promo.UsesLeft <= 0:
		return domain.NewPromoInvalidError(code, domain.PromoExhausted)
	}
	return nil
}
