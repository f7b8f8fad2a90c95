package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const selectOrders = `
        SELECT o.order_id, o.user_id, u.telegram_id, o.photos, o.delivery_point_id,
               o.receiver_name, o.receiver_phone, o.comment, o.status, o.price, o.discount,
               o.extra_percent, o.promo_code, o.paid, o.reminder_stage, o.created_at, o.updated_at
        FROM orders o
        JOIN users u ON u.id = o.user_id
`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.TelegramID, &order.Items, &order.DeliveryPointID,
		&order.ReceiverName, &order.ReceiverPhone, &order.Comment, &order.Status, &order.Price, &order.Discount,
		&order.ExtraPercent, &order.PromoCode, &order.Paid, &order.ReminderStage, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (order_id, user_id, photos, delivery_point_id, receiver_name, receiver_phone, comment,
                            status, price, discount, extra_percent, promo_code, paid, reminder_stage, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			order.ID, order.UserID, order.Items, order.DeliveryPointID, order.ReceiverName, order.ReceiverPhone, order.Comment,
			order.Status, order.Price, order.Discount, order.ExtraPercent, order.PromoCode, order.Paid, int(order.ReminderStage),
			order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrDuplicateID
			}
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := selectOrders + `
        WHERE o.order_id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) ListByStatus(ctx context.Context, userID int, status domain.Status, limit, offset int) ([]domain.Order, error) {
	query := selectOrders + `
        WHERE o.user_id = $1 AND o.status = $2
        ORDER BY o.created_at DESC
        LIMIT $3 OFFSET $4
    `
	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		zap.L().Error("can't scan order row", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// UpdateDetails writes the editable fields of an order that is still new
// and whose paid flag has not changed since it was read.
func (r *Repository) UpdateDetails(ctx context.Context, order *domain.Order) error {
	query := `
        UPDATE orders
        SET photos = $2, delivery_point_id = $3, receiver_name = $4, receiver_phone = $5,
            comment = $6, price = $7, discount = $8, updated_at = $9
        WHERE order_id = $1 AND status = 'new' AND paid = $10
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query,
			order.ID, order.Items, order.DeliveryPointID, order.ReceiverName, order.ReceiverPhone,
			order.Comment, order.Price, order.Discount, order.UpdatedAt, order.Paid,
		)
		if err != nil {
			zap.L().Error("failed to update order", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConcurrencyConflict
		}
		return nil
	})
}

// Transition applies t and reports whether the row still matched.
func (r *Repository) Transition(ctx context.Context, t domain.Transition) (bool, error) {
	query := `
        UPDATE orders
        SET status = $2,
            paid = COALESCE($3, paid),
            reminder_stage = COALESCE($4, reminder_stage),
            updated_at = $5
        WHERE order_id = $1
          AND status = $6
          AND ($7::boolean IS NULL OR paid = $7)
          AND ($8::smallint IS NULL OR reminder_stage = $8)
    `
	tag, err := r.db.Exec(ctx, query,
		t.OrderID, t.ToStatus, t.SetPaid, stageArg(t.SetStage), t.At,
		t.FromStatus, t.FromPaid, stageArg(t.FromStage),
	)
	if err != nil {
		zap.L().Error("failed to transition order", zap.String("order_id", t.OrderID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindPaidForProgression(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Order, error) {
	query := selectOrders + `
        WHERE o.status = 'new' AND o.paid = true AND o.created_at <= $1
        ORDER BY o.created_at ASC
        LIMIT $2
    `
	return r.findCandidates(ctx, query, createdBefore, limit)
}

func (r *Repository) FindUnpaidForReminder(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Order, error) {
	query := selectOrders + `
        WHERE o.status = 'new' AND o.paid = false AND o.created_at <= $1
        ORDER BY o.created_at ASC
        LIMIT $2
    `
	return r.findCandidates(ctx, query, createdBefore, limit)
}

func (r *Repository) findCandidates(ctx context.Context, query string, createdBefore time.Time, limit int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, createdBefore, limit)
	if err != nil {
		zap.L().Error("can't get orders for reconciling", zap.Error(err))
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		zap.L().Error("can't scan order row for reconciling", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func stageArg(stage *domain.ReminderStage) *int {
	if stage == nil {
		return nil
	}
	v := int(*stage)
	return &v
}
