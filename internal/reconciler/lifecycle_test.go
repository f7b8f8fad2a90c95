package reconciler

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/service/orderservice"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore applies transitions with the same conditions as the SQL store.
type memStore struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	afterTransition func()
}

func newMemStore(orders ...domain.Order) *memStore {
	s := &memStore{orders: make(map[string]*domain.Order)}
	for i := range orders {
		o := orders[i]
		s.orders[o.ID] = &o
	}
	return s
}

func (s *memStore) get(id string) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

func (s *memStore) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := *order
	s.orders[o.ID] = &o
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) ListByStatus(context.Context, int, domain.Status, int, int) ([]domain.Order, error) {
	return nil, nil
}

func (s *memStore) UpdateDetails(context.Context, *domain.Order) error {
	return nil
}

func (s *memStore) Transition(_ context.Context, t domain.Transition) (bool, error) {
	ok, err := s.transition(t)
	if ok && s.afterTransition != nil {
		s.afterTransition()
	}
	return ok, err
}

func (s *memStore) transition(t domain.Transition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[t.OrderID]
	if !ok || o.Status != t.FromStatus ||
		(t.FromPaid != nil && o.Paid != *t.FromPaid) ||
		(t.FromStage != nil && o.ReminderStage != *t.FromStage) {
		return false, nil
	}
	o.Status = t.ToStatus
	if t.SetPaid != nil {
		o.Paid = *t.SetPaid
	}
	if t.SetStage != nil {
		o.ReminderStage = *t.SetStage
	}
	o.UpdatedAt = t.At
	return true, nil
}

func (s *memStore) find(createdBefore time.Time, limit int, paid bool) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []domain.Order
	for _, o := range s.orders {
		if o.Status == domain.StatusNew && o.Paid == paid && !o.CreatedAt.After(createdBefore) {
			found = append(found, *o)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.Before(found[j].CreatedAt) })
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

func (s *memStore) FindPaidForProgression(_ context.Context, createdBefore time.Time, limit int) ([]domain.Order, error) {
	return s.find(createdBefore, limit, true), nil
}

func (s *memStore) FindUnpaidForReminder(_ context.Context, createdBefore time.Time, limit int) ([]domain.Order, error) {
	return s.find(createdBefore, limit, false), nil
}

type outbox struct {
	mu      sync.Mutex
	sent    map[int64][]string
	deleted []string
}

// Send drops the message once ctx is done, like the bot API client.
func (o *outbox) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sent == nil {
		o.sent = make(map[int64][]string)
	}
	o.sent[chatID] = append(o.sent[chatID], text)
	return nil
}

func (o *outbox) Delete(_ context.Context, _ int64, orderID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deleted = append(o.deleted, orderID)
	return nil
}

func (o *outbox) messages(chatID int64) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.sent[chatID]...)
}

func newLifecycle(store *memStore) (*Service, *outbox, *clock.Fake) {
	clk := clock.NewFake(now)
	box := &outbox{}
	orders := orderservice.New(orderservice.Deps{
		Repo:     store,
		Notifier: box,
		Storage:  box,
		Clock:    clk,
	})
	cfg := DefaultConfig()
	cfg.Workers = 4
	return New(cfg, store, orders, clk, NewMetrics(prometheus.NewRegistry())), box, clk
}

func TestReconciler_PaidProgression(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: "aaaaaaaa-1", TelegramID: 1, Status: domain.StatusNew, Paid: true, CreatedAt: now.Add(-6 * time.Minute)},
		domain.Order{ID: "bbbbbbbb-2", TelegramID: 2, Status: domain.StatusNew, Paid: true, CreatedAt: now.Add(-4 * time.Minute)},
	)
	service, box, _ := newLifecycle(store)
	t.Cleanup(service.workerPool.Close)

	service.tick(context.Background(), service.paidProgression())

	assert.Equal(t, domain.StatusInProgress, store.get("aaaaaaaa-1").Status)
	assert.Equal(t, domain.StatusNew, store.get("bbbbbbbb-2").Status)
	assert.Equal(t, []string{"🛠 Заказ #aaaaaaaa переведён в статус «В обработке»."}, box.messages(1))
	assert.Empty(t, box.messages(2))
}

func TestReconciler_ReminderSentOnce(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: "cccccccc-3", TelegramID: 3, Status: domain.StatusNew, CreatedAt: now.Add(-11 * time.Minute)},
	)
	service, box, clk := newLifecycle(store)
	t.Cleanup(service.workerPool.Close)

	service.tick(context.Background(), service.unpaidExpiry())
	service.tick(context.Background(), service.unpaidExpiry())

	assert.Equal(t, domain.ReminderFirst, store.get("cccccccc-3").ReminderStage)
	assert.Equal(t, []string{"💡 Напоминание: заказ #cccccccc всё ещё не оплачен."}, box.messages(3))

	clk.Advance(10 * time.Minute)
	service.tick(context.Background(), service.unpaidExpiry())

	assert.Equal(t, domain.ReminderFinal, store.get("cccccccc-3").ReminderStage)
	require.Len(t, box.messages(3), 2)
	assert.Equal(t, "⚠️ Последнее предупреждение: заказ #cccccccc не оплачен.", box.messages(3)[1])

	clk.Advance(10 * time.Minute)
	service.tick(context.Background(), service.unpaidExpiry())

	assert.Equal(t, domain.StatusExpired, store.get("cccccccc-3").Status)
	assert.Len(t, box.messages(3), 3)
}

func TestReconciler_ExpiresOnce(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: "dddddddd-4", TelegramID: 4, Status: domain.StatusNew, CreatedAt: now.Add(-31 * time.Minute)},
		domain.Order{ID: "eeeeeeee-5", TelegramID: 5, Status: domain.StatusNew, Paid: true, CreatedAt: now.Add(-31 * time.Minute)},
	)
	service, box, _ := newLifecycle(store)
	t.Cleanup(service.workerPool.Close)

	service.tick(context.Background(), service.unpaidExpiry())
	service.tick(context.Background(), service.unpaidExpiry())

	assert.Equal(t, domain.StatusExpired, store.get("dddddddd-4").Status)
	assert.Equal(t, []string{"❌ Заказ #dddddddd отменён из-за неоплаты."}, box.messages(4))
	assert.Equal(t, []string{"dddddddd-4"}, box.deleted)
	assert.Equal(t, domain.StatusNew, store.get("eeeeeeee-5").Status)
}

func TestReconciler_ConcurrentPassesNotifyOnce(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: "ffffffff-6", TelegramID: 6, Status: domain.StatusNew, CreatedAt: now.Add(-11 * time.Minute)},
	)
	first, box, clk := newLifecycle(store)
	t.Cleanup(first.workerPool.Close)
	orders := orderservice.New(orderservice.Deps{Repo: store, Notifier: box, Storage: box, Clock: clk})
	second := New(first.cfg, store, orders, clk, NewMetrics(prometheus.NewRegistry()))
	t.Cleanup(second.workerPool.Close)

	var wg sync.WaitGroup
	for _, s := range []*Service{first, second} {
		wg.Add(1)
		go func(s *Service) {
			defer wg.Done()
			s.tick(context.Background(), s.unpaidExpiry())
		}(s)
	}
	wg.Wait()

	assert.Equal(t, domain.ReminderFirst, store.get("ffffffff-6").ReminderStage)
	assert.Len(t, box.messages(6), 1)
}

func TestReconciler_ShutdownFinishesPass(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: "abababab-7", TelegramID: 7, Status: domain.StatusNew, CreatedAt: now.Add(-11 * time.Minute)},
	)
	service, box, _ := newLifecycle(store)
	t.Cleanup(service.workerPool.Close)

	ctx, cancel := context.WithCancel(context.Background())
	store.afterTransition = cancel

	service.tick(ctx, service.unpaidExpiry())
	store.afterTransition = nil
	service.tick(context.Background(), service.unpaidExpiry())

	assert.Equal(t, domain.ReminderFirst, store.get("abababab-7").ReminderStage)
	assert.Equal(t, []string{"💡 Напоминание: заказ #abababab всё ещё не оплачен."}, box.messages(7))
}
