package orderservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/internal/service/promoservice"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 1
	MaxPageSize     = 50
	maxCommentLen   = 1000
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByStatus(ctx context.Context, userID int, status domain.Status, limit, offset int) ([]domain.Order, error)
	UpdateDetails(ctx context.Context, order *domain.Order) error
	Transition(ctx context.Context, t domain.Transition) (bool, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	MarkFirstOrderPaid(ctx context.Context, id int) (bool, error)
}

type PickupRepo interface {
	FindByID(ctx context.Context, id int) (*domain.PickupPoint, error)
}

type PromoLedger interface {
	ApplyFirstOrderDiscount(ctx context.Context, userID int, amount decimal.Decimal) (promoservice.Result, error)
	RedeemPromo(ctx context.Context, code string, amount decimal.Decimal) (promoservice.Result, error)
}

type Pricer interface {
	Price(items []domain.LineItem) (pricing.Breakdown, error)
}

type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Storage interface {
	Delete(ctx context.Context, telegramID int64, orderID string) error
}

type Deps struct {
	Repo      Repo
	Users     UserRepo
	Pickups   PickupRepo
	Promo     PromoLedger
	Pricer    Pricer
	TxManager pg.TXManager
	Notifier  Notifier
	Storage   Storage
	Clock     clock.Clock
}

type Service struct {
	repo      Repo
	users     UserRepo
	pickups   PickupRepo
	promo     PromoLedger
	pricer    Pricer
	txManager pg.TXManager
	notifier  Notifier
	storage   Storage
	clock     clock.Clock
	newID     func() string
}

func New(d Deps) *Service {
	return &Service{
		repo:      d.Repo,
		users:     d.Users,
		pickups:   d.Pickups,
		promo:     d.Promo,
		pricer:    d.Pricer,
		txManager: d.TxManager,
		notifier:  d.Notifier,
		storage:   d.Storage,
		clock:     d.Clock,
		newID:     uuid.NewString,
	}
}

type CreateRequest struct {
	UserID          int
	Items           []domain.LineItem
	Comment         string
	PromoCode       string
	DeliveryPointID *int
	ReceiverName    string
	ReceiverPhone   string
}

// CreateOrder prices the items, applies the first-order discount or else the
// promo code, and stores the order. The promo use and the insert share one
// transaction.
func (s *Service) CreateOrder(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	if err := pricing.ValidateItems(req.Items); err != nil {
		return nil, err
	}
	comment, err := normalizeComment(req.Comment)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", req.UserID)
	}
	if req.DeliveryPointID != nil {
		if err := s.checkPickupPoint(ctx, *req.DeliveryPointID); err != nil {
			return nil, err
		}
	}

	breakdown, err := s.pricer.Price(req.Items)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := &domain.Order{
		ID:              s.newID(),
		UserID:          user.ID,
		TelegramID:      user.TelegramID,
		Items:           req.Items,
		DeliveryPointID: req.DeliveryPointID,
		ReceiverName:    firstNonEmpty(req.ReceiverName, user.FullName),
		ReceiverPhone:   firstNonEmpty(req.ReceiverPhone, user.PhoneNumber),
		Comment:         comment,
		Status:          domain.StatusNew,
		Paid:            false,
		ReminderStage:   domain.ReminderNone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		extra, err := s.extraDiscount(ctx, user.ID, req.PromoCode, breakdown.AfterThreshold)
		if err != nil {
			return err
		}
		if extra.Applied && !extra.firstOrder {
			code := promoservice.NormalizeCode(req.PromoCode)
			order.PromoCode = &code
		}
		order.Price = extra.Amount
		order.Discount = pricing.Sum(breakdown.ThresholdDiscount, extra.Discount)
		order.ExtraPercent = extra.Percent

		return s.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("order_id", order.ID),
		zap.Int("user_id", order.UserID),
		zap.String("price", order.Price.StringFixed(2)),
		zap.String("discount", order.Discount.StringFixed(2)),
	)
	return order, nil
}

type extraResult struct {
	promoservice.Result
	firstOrder bool
}

func (s *Service) extraDiscount(ctx context.Context, userID int, code string, amount decimal.Decimal) (extraResult, error) {
	first, err := s.promo.ApplyFirstOrderDiscount(ctx, userID, amount)
	if err != nil {
		return extraResult{}, err
	}
	if first.Applied {
		if strings.TrimSpace(code) != "" {
			zap.L().Info("promo code skipped for first order", zap.Int("user_id", userID))
		}
		return extraResult{Result: first, firstOrder: true}, nil
	}
	if strings.TrimSpace(code) == "" {
		return extraResult{Result: promoservice.Result{Amount: amount, Discount: decimal.Zero}}, nil
	}
	redeemed, err := s.promo.RedeemPromo(ctx, code, amount)
	if err != nil {
		return extraResult{}, err
	}
	return extraResult{Result: redeemed}, nil
}

// ConfirmPayment marks a new order paid and records the user's first paid
// order. Confirming an order that is already paid returns it unchanged.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Paid {
		return order, nil
	}

	t, err := plan(order, EventPay, s.clock.Now())
	if err != nil {
		return nil, err
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, t); err != nil {
			return err
		}
		if _, err := s.users.MarkFirstOrderPaid(ctx, order.UserID); err != nil {
			return fmt.Errorf("mark first order paid: %w", err)
		}
		return nil
	})
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		current, loadErr := s.load(ctx, orderID)
		if loadErr != nil {
			return nil, loadErr
		}
		if current.Paid {
			return current, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	markApplied(order, t)
	zap.L().Info("order paid", zap.String("order_id", order.ID))
	return order, nil
}

// CancelOrder moves a new order to cancelled and removes its files. The row
// is kept.
func (s *Service) CancelOrder(ctx context.Context, userID int, orderID string) (*domain.Order, error) {
	order, err := s.loadOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	t, err := plan(order, EventCancel, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, t); err != nil {
		return nil, err
	}
	markApplied(order, t)

	s.removeFiles(ctx, order)
	zap.L().Info("order cancelled", zap.String("order_id", order.ID))
	return order, nil
}

// CompleteOrder marks an order in progress as ready for pickup.
func (s *Service) CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	t, err := plan(order, EventComplete, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, t); err != nil {
		return nil, err
	}
	markApplied(order, t)

	s.notify(ctx, order, statusChangedMessage(order))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, userID int, orderID string) (*domain.Order, error) {
	return s.loadOwned(ctx, userID, orderID)
}

// ListOrders pages through the user's orders in one status, newest first.
func (s *Service) ListOrders(ctx context.Context, userID int, status domain.Status, limit, offset int) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must not exceed %d", MaxPageSize))
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}

	orders, err := s.repo.ListByStatus(ctx, userID, status, limit, offset)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *Service) load(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return order, nil
}

// loadOwned hides orders of other users behind NotFound.
func (s *Service) loadOwned(ctx context.Context, userID int, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return order, nil
}

func (s *Service) apply(ctx context.Context, t domain.Transition) error {
	ok, err := s.repo.Transition(ctx, t)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrConcurrencyConflict, t.OrderID)
	}
	return nil
}

func markApplied(order *domain.Order, t domain.Transition) {
	order.Status = t.ToStatus
	if t.SetPaid != nil {
		order.Paid = *t.SetPaid
	}
	if t.SetStage != nil {
		order.ReminderStage = *t.SetStage
	}
	order.UpdatedAt = t.At
}

func (s *Service) checkPickupPoint(ctx context.Context, id int) error {
	point, err := s.pickups.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if point == nil {
		return domain.NewNotFoundError("pickup point", id)
	}
	return nil
}

// removeFiles runs after the status change is committed. A failure is only
// logged.
func (s *Service) removeFiles(ctx context.Context, order *domain.Order) {
	if err := s.storage.Delete(ctx, order.TelegramID, order.ID); err != nil {
		zap.L().Error("can't delete order files", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (s *Service) notify(ctx context.Context, order *domain.Order, text string) {
	if err := s.notifier.Send(ctx, order.TelegramID, text); err != nil {
		zap.L().Error("can't notify user", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func normalizeComment(comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > maxCommentLen {
		return "", domain.NewValidationError("comment", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	return comment, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
