package orderservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"go.uber.org/zap"
)

const (
	reminderText      = "💡 Напоминание: заказ #%s всё ещё не оплачен."
	finalWarningText  = "⚠️ Последнее предупреждение: заказ #%s не оплачен."
	expiredText       = "❌ Заказ #%s отменён из-за неоплаты."
	statusChangedText = "🛠 Заказ #%s переведён в статус «%s»."
)

func statusChangedMessage(order *domain.Order) string {
	return fmt.Sprintf(statusChangedText, order.ShortID(), order.Status.Title())
}

func reminderMessage(order *domain.Order, stage domain.ReminderStage) string {
	if stage == domain.ReminderFinal {
		return fmt.Sprintf(finalWarningText, order.ShortID())
	}
	return fmt.Sprintf(reminderText, order.ShortID())
}

// PromotePaid sends a paid new order to print.
func (s *Service) PromotePaid(ctx context.Context, order *domain.Order) error {
	t, err := plan(order, EventPromote, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.apply(ctx, t); err != nil {
		return err
	}
	markApplied(order, t)

	zap.L().Info("order sent to print", zap.String("order_id", order.ID))
	s.notify(ctx, order, statusChangedMessage(order))
	return nil
}

// SendReminder advances the reminder stage to stage and tells the user. The
// stage is written before the message is sent so a reminder goes out at most
// once.
func (s *Service) SendReminder(ctx context.Context, order *domain.Order, stage domain.ReminderStage) error {
	if stage != order.ReminderStage+1 {
		return fmt.Errorf("%w: reminder stage %d after %d", domain.ErrInvalidTransition, stage, order.ReminderStage)
	}
	t, err := plan(order, EventRemind, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.apply(ctx, t); err != nil {
		return err
	}
	markApplied(order, t)

	zap.L().Info("payment reminder sent", zap.String("order_id", order.ID), zap.Int("stage", int(stage)))
	s.notify(ctx, order, reminderMessage(order, stage))
	return nil
}

// ExpireUnpaid closes an order that was not paid in time and removes its
// files.
func (s *Service) ExpireUnpaid(ctx context.Context, order *domain.Order) error {
	t, err := plan(order, EventExpire, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.apply(ctx, t); err != nil {
		return err
	}
	markApplied(order, t)

	zap.L().Info("unpaid order expired", zap.String("order_id", order.ID))
	s.removeFiles(ctx, order)
	s.notify(ctx, order, fmt.Sprintf(expiredText, order.ShortID()))
	return nil
}
