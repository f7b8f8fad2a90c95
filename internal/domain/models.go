package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	// StatusNew заказ создан, ожидает оплаты или обработки;
	StatusNew Status = "new"
	// StatusInProgress заказ оплачен и передан в печать;
	StatusInProgress Status = "in_progress"
	// StatusCompleted заказ готов к выдаче;
	StatusCompleted Status = "completed"
	// StatusCancelled заказ отменён пользователем;
	StatusCancelled Status = "cancelled"
	// StatusExpired заказ не был оплачен вовремя.
	StatusExpired Status = "expired"
)

var statusLabels = map[Status]struct{ icon, title string }{
	StatusNew:        {"🔄", "Новый"},
	StatusInProgress: {"🛠", "В обработке"},
	StatusCompleted:  {"✅", "Готов"},
	StatusCancelled:  {"❌", "Отменён"},
	StatusExpired:    {"⌛", "Просрочен"},
}

// Label is the status as shown in order lists, with its icon.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l.icon + " " + l.title
	}
	return string(s)
}

func (s Status) Title() string {
	if l, ok := statusLabels[s]; ok {
		return l.title
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// ReminderStage counts unpaid-order reminders already sent.
type ReminderStage int

const (
	ReminderNone ReminderStage = iota
	ReminderFirst
	ReminderFinal
)

type User struct {
	ID             int       `db:"id"`
	TelegramID     int64     `db:"telegram_id"`
	FullName       string    `db:"full_name"`
	PhoneNumber    string    `db:"phone_number"`
	AcceptedPolicy bool      `db:"accepted_policy"`
	FirstOrderPaid bool      `db:"first_order_paid"`
	CreatedAt      time.Time `db:"created_at"`
}

type LineItem struct {
	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	Format      string `json:"format"`
	Copies      int    `json:"copies"`
}

type Order struct {
	ID              string          `db:"order_id"`
	UserID          int             `db:"user_id"`
	TelegramID      int64           `db:"telegram_id"`
	Items           []LineItem      `db:"photos"`
	DeliveryPointID *int            `db:"delivery_point_id"`
	ReceiverName    string          `db:"receiver_name"`
	ReceiverPhone   string          `db:"receiver_phone"`
	Comment         string          `db:"comment"`
	Status          Status          `db:"status"`
	Price           decimal.Decimal `db:"price"`
	Discount        decimal.Decimal `db:"discount"`
	ExtraPercent    int             `db:"extra_percent"`
	PromoCode       *string         `db:"promo_code"`
	Paid            bool            `db:"paid"`
	ReminderStage   ReminderStage   `db:"reminder_stage"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ShortID is the prefix shown to users in messages.
func (o *Order) ShortID() string {
	if len(o.ID) > 8 {
		return o.ID[:8]
	}
	return o.ID
}

func (o *Order) Copies() int {
	total := 0
	for _, item := range o.Items {
		total += item.Copies
	}
	return total
}

type PromoCode struct {
	Code            string    `db:"code"`
	DiscountPercent int       `db:"discount_percent"`
	ExpiresAt       time.Time `db:"expires_at"`
	UsesLeft        *int      `db:"uses_left"`
}

type PickupPoint struct {
	ID        int     `db:"id"`
	Name      string  `db:"name"`
	Address   string  `db:"address"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Rating    float64 `db:"rating"`
}

// Transition is a conditional order write. It applies only while the row
// still has FromStatus and, when set, FromPaid and FromStage.
type Transition struct {
	OrderID    string
	FromStatus Status
	FromPaid   *bool
	FromStage  *ReminderStage
	ToStatus   Status
	SetPaid    *bool
	SetStage   *ReminderStage
	At         time.Time
}
