package orderservice

import (
	"fmt"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
)

type EventKind string

const (
	EventPay      EventKind = "pay"
	EventEdit     EventKind = "edit"
	EventCancel   EventKind = "cancel"
	EventPromote  EventKind = "promote"
	EventRemind   EventKind = "remind"
	EventExpire   EventKind = "expire"
	EventComplete EventKind = "complete"
)

type transitionKey struct {
	from  domain.Status
	event EventKind
}

// rule is the target of a move. wantPaid, when set, is the paid flag the
// order must have.
type rule struct {
	to        domain.Status
	wantPaid  *bool
	setPaid   *bool
	nextStage bool
}

var (
	paid   = true
	unpaid = false
)

// lifecycle lists every allowed move. A missing key is an invalid transition.
var lifecycle = map[transitionKey]rule{
	{domain.StatusNew, EventPay}:             {to: domain.StatusNew, wantPaid: &unpaid, setPaid: &paid},
	{domain.StatusNew, EventEdit}:            {to: domain.StatusNew},
	{domain.StatusNew, EventCancel}:          {to: domain.StatusCancelled},
	{domain.StatusNew, EventPromote}:         {to: domain.StatusInProgress, wantPaid: &paid},
	{domain.StatusNew, EventRemind}:          {to: domain.StatusNew, wantPaid: &unpaid, nextStage: true},
	{domain.StatusNew, EventExpire}:          {to: domain.StatusExpired, wantPaid: &unpaid},
	{domain.StatusInProgress, EventComplete}: {to: domain.StatusCompleted},
}

// plan builds the conditional write for event on the order as it was read.
// The write is pinned to the status and paid flag observed, and to the
// reminder stage when the event advances it.
func plan(order *domain.Order, event EventKind, at time.Time) (domain.Transition, error) {
	r, ok := lifecycle[transitionKey{order.Status, event}]
	if !ok {
		return domain.Transition{}, fmt.Errorf("%w: %s on %s order", domain.ErrInvalidTransition, event, order.Status)
	}
	if r.wantPaid != nil && order.Paid != *r.wantPaid {
		return domain.Transition{}, fmt.Errorf("%w: %s on order with paid=%t", domain.ErrInvalidTransition, event, order.Paid)
	}

	observedPaid := order.Paid
	t := domain.Transition{
		OrderID:    order.ID,
		FromStatus: order.Status,
		FromPaid:   &observedPaid,
		ToStatus:   r.to,
		SetPaid:    r.setPaid,
		At:         at,
	}
	if r.nextStage {
		if order.ReminderStage >= domain.ReminderFinal {
			return domain.Transition{}, fmt.Errorf("%w: no reminder after the final one", domain.ErrInvalidTransition)
		}
		from := order.ReminderStage
		next := from + 1
		t.FromStage = &from
		t.SetStage = &next
	}
	return t, nil
}

// Allowed reports whether event can be applied to an order in status.
func Allowed(status domain.Status, event EventKind) bool {
	_, ok := lifecycle[transitionKey{status, event}]
	return ok
}
