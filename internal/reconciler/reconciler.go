package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	loopPaidProgression = "paid-progression"
	loopUnpaidExpiry    = "unpaid-expiry"
)

type OrderRepo interface {
	FindPaidForProgression(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Order, error)
	FindUnpaidForReminder(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Order, error)
}

type Lifecycle interface {
	PromotePaid(ctx context.Context, order *domain.Order) error
	SendReminder(ctx context.Context, order *domain.Order, stage domain.ReminderStage) error
	ExpireUnpaid(ctx context.Context, order *domain.Order) error
}

type Config struct {
	Interval           time.Duration
	ProgressAfter      time.Duration
	FirstReminderAfter time.Duration
	FinalReminderAfter time.Duration
	ExpireAfter        time.Duration
	BatchSize          int
	Workers            int
}

func DefaultConfig() Config {
	return Config{
		Interval:           time.Minute,
		ProgressAfter:      5 * time.Minute,
		FirstReminderAfter: 10 * time.Minute,
		FinalReminderAfter: 20 * time.Minute,
		ExpireAfter:        30 * time.Minute,
		BatchSize:          100,
		Workers:            10,
	}
}

// loop is one periodic pass: scan finds candidates, handle acts on one
// order and names the outcome.
type loop struct {
	name   string
	scan   func(ctx context.Context, now time.Time) ([]domain.Order, error)
	handle func(ctx context.Context, order *domain.Order, now time.Time) (string, error)
}

type Service struct {
	cfg        Config
	orders     OrderRepo
	lifecycle  Lifecycle
	clock      clock.Clock
	workerPool WorkerPoolI
	metrics    *Metrics
	tracer     trace.Tracer
	inFlight   sync.Map
	group      errgroup.Group
}

func New(cfg Config, orders OrderRepo, lifecycle Lifecycle, clk clock.Clock, metrics *Metrics) *Service {
	return &Service{
		cfg:        cfg,
		orders:     orders,
		lifecycle:  lifecycle,
		clock:      clk,
		workerPool: NewWorkerPool(cfg.Workers),
		metrics:    metrics,
		tracer:     otel.Tracer("photoexpress/reconciler"),
	}
}

// Start launches both loops. They stop when ctx is done; Wait blocks until
// they have.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("reconciler started", zap.Duration("interval", s.cfg.Interval))
	for _, l := range []loop{s.paidProgression(), s.unpaidExpiry()} {
		l := l
		s.group.Go(func() error {
			s.run(ctx, l)
			return nil
		})
	}
}

func (s *Service) Wait() error {
	err := s.group.Wait()
	s.workerPool.Close()
	zap.L().Info("reconciler stopped")
	return err
}

func (s *Service) run(ctx context.Context, l loop) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.tick(ctx, l)
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping loop", zap.String("loop", l.name))
			return
		case <-ticker.C:
			s.tick(ctx, l)
		}
	}
}

// tick runs one pass of l and returns once every order it dispatched is
// handled. A pass that has started runs to the end on a context detached
// from ctx, so shutdown waits for it instead of cutting it short.
func (s *Service) tick(ctx context.Context, l loop) {
	if ctx.Err() != nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	started := time.Now()
	defer func() {
		s.metrics.tickDuration.WithLabelValues(l.name).Observe(time.Since(started).Seconds())
	}()

	now := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, "reconciler."+l.name, trace.WithAttributes(
		attribute.String("reconciler.loop", l.name),
		attribute.String("now", now.Format(time.DateTime)),
	))
	defer span.End()

	orders, err := l.scan(ctx, now)
	if err != nil {
		zap.L().Error("failed to fetch orders for reconciling", zap.String("loop", l.name), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		return
	}
	span.SetAttributes(attribute.Int("reconciler.candidates", len(orders)))

	var wg sync.WaitGroup
	for i := range orders {
		order := orders[i]
		if _, loaded := s.inFlight.LoadOrStore(order.ID, struct{}{}); loaded {
			continue
		}

		wg.Add(1)
		err := s.workerPool.AddTask(ctx, func() error {
			defer wg.Done()
			defer s.inFlight.Delete(order.ID)
			return s.handle(ctx, l, &order, now)
		})
		if err != nil {
			wg.Done()
			s.inFlight.Delete(order.ID)
			zap.L().Warn("reconcile pass interrupted", zap.String("loop", l.name), zap.Error(err))
			break
		}
	}
	wg.Wait()
}

func (s *Service) handle(ctx context.Context, l loop, order *domain.Order, now time.Time) error {
	ctx, span := s.tracer.Start(ctx, "reconciler."+l.name+".order",
		trace.WithAttributes(attribute.String("order.id", order.ID)))
	defer span.End()

	result, err := l.handle(ctx, order, now)
	switch {
	case errors.Is(err, domain.ErrConcurrencyConflict):
		zap.L().Debug("order changed since scan, retry on next pass",
			zap.String("loop", l.name), zap.String("order_id", order.ID))
		result, err = resultConflict, nil
	case err != nil:
		result = resultError
		span.RecordError(err)
		span.SetStatus(codes.Error, "transition failed")
		err = fmt.Errorf("%s: order %s: %w", l.name, order.ID, err)
	}
	span.SetAttributes(attribute.String("reconciler.result", result))
	s.metrics.transitions.WithLabelValues(l.name, result).Inc()
	return err
}

func (s *Service) paidProgression() loop {
	return loop{
		name: loopPaidProgression,
		scan: func(ctx context.Context, now time.Time) ([]domain.Order, error) {
			return s.orders.FindPaidForProgression(ctx, now.Add(-s.cfg.ProgressAfter), s.cfg.BatchSize)
		},
		handle: func(ctx context.Context, order *domain.Order, now time.Time) (string, error) {
			if now.Sub(order.CreatedAt) < s.cfg.ProgressAfter {
				return resultWaiting, nil
			}
			return resultPromoted, s.lifecycle.PromotePaid(ctx, order)
		},
	}
}

func (s *Service) unpaidExpiry() loop {
	return loop{
		name: loopUnpaidExpiry,
		scan: func(ctx context.Context, now time.Time) ([]domain.Order, error) {
			return s.orders.FindUnpaidForReminder(ctx, now.Add(-s.cfg.FirstReminderAfter), s.cfg.BatchSize)
		},
		handle: func(ctx context.Context, order *domain.Order, now time.Time) (string, error) {
			switch s.nextStep(order, now) {
			case stepExpire:
				return resultExpired, s.lifecycle.ExpireUnpaid(ctx, order)
			case stepFinalWarning:
				return resultFinalWarning, s.lifecycle.SendReminder(ctx, order, domain.ReminderFinal)
			case stepReminder:
				return resultReminded, s.lifecycle.SendReminder(ctx, order, domain.ReminderFirst)
			}
			return resultWaiting, nil
		},
	}
}

type step int

const (
	stepNone step = iota
	stepReminder
	stepFinalWarning
	stepExpire
)

// nextStep picks the escalation for an unpaid order. Expiry wins at any
// reminder stage, so an order found late after downtime is closed at once.
func (s *Service) nextStep(order *domain.Order, now time.Time) step {
	age := now.Sub(order.CreatedAt)
	switch {
	case age >= s.cfg.ExpireAfter:
		return stepExpire
	case order.ReminderStage == domain.ReminderFirst && age >= s.cfg.FinalReminderAfter:
		return stepFinalWarning
	case order.ReminderStage == domain.ReminderNone && age >= s.cfg.FirstReminderAfter:
		return stepReminder
	}
	return stepNone
}
