package orderservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"go.uber.org/zap"
)

// ItemsPatch changes every photo of an order. Nil fields are left as is.
type ItemsPatch struct {
	Format *string
	Copies *int
}

// UpdateItems changes format or copies of all photos and re-prices the
// order with the discount percent recorded at creation. Paid orders can't be
// re-priced.
func (s *Service) UpdateItems(ctx context.Context, userID int, orderID string, patch ItemsPatch) (*domain.Order, error) {
	if patch.Format == nil && patch.Copies == nil {
		return nil, domain.NewValidationError("items", "nothing to update")
	}
	if patch.Format != nil && strings.TrimSpace(*patch.Format) == "" {
		return nil, domain.NewValidationError("format", "is required")
	}
	if patch.Copies != nil {
		if err := pricing.ValidateCopies(*patch.Copies); err != nil {
			return nil, err
		}
	}

	return s.edit(ctx, userID, orderID, func(order *domain.Order) error {
		if order.Paid {
			return fmt.Errorf("%w: items of a paid order", domain.ErrInvalidTransition)
		}
		items := make([]domain.LineItem, len(order.Items))
		copy(items, order.Items)
		for i := range items {
			if patch.Format != nil {
				items[i].Format = strings.TrimSpace(*patch.Format)
			}
			if patch.Copies != nil {
				items[i].Copies = *patch.Copies
			}
		}

		breakdown, err := s.pricer.Price(items)
		if err != nil {
			return err
		}
		amount, extra := pricing.Percent(breakdown.AfterThreshold, order.ExtraPercent)
		order.Items = items
		order.Price = amount
		order.Discount = pricing.Sum(breakdown.ThresholdDiscount, extra)
		return nil
	})
}

func (s *Service) UpdateReceiver(ctx context.Context, userID int, orderID, name, phone string) (*domain.Order, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" {
		return nil, domain.NewValidationError("receiver_name", "is required")
	}
	if phone == "" {
		return nil, domain.NewValidationError("receiver_phone", "is required")
	}
	return s.edit(ctx, userID, orderID, func(order *domain.Order) error {
		order.ReceiverName = name
		order.ReceiverPhone = phone
		return nil
	})
}

func (s *Service) UpdateComment(ctx context.Context, userID int, orderID, comment string) (*domain.Order, error) {
	comment, err := normalizeComment(comment)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, userID, orderID, func(order *domain.Order) error {
		order.Comment = comment
		return nil
	})
}

func (s *Service) SetDeliveryPoint(ctx context.Context, userID int, orderID string, pointID int) (*domain.Order, error) {
	if err := s.checkPickupPoint(ctx, pointID); err != nil {
		return nil, err
	}
	return s.edit(ctx, userID, orderID, func(order *domain.Order) error {
		order.DeliveryPointID = &pointID
		return nil
	})
}

// edit loads the caller's order, checks that it can still be edited,
// applies mutate and writes the result conditionally on the state read.
func (s *Service) edit(ctx context.Context, userID int, orderID string, mutate func(order *domain.Order) error) (*domain.Order, error) {
	order, err := s.loadOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := plan(order, EventEdit, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateDetails(ctx, order); err != nil {
		return nil, err
	}
	zap.L().Info("order updated", zap.String("order_id", order.ID))
	return order, nil
}
