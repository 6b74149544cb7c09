package usecase

import (
	"context"
	"errors"
	"time"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

var ErrInvalidStatus = errors.New("invalid status")

// Orders is the read/transition side of the ledger: student history,
// the staff overview, the single-field status update, and the two
// dashboard counters.
type Orders struct {
	ledger OrderLedger
	events EventPublisher

	loc *time.Location
	now func() time.Time
}

func NewOrders(ledger OrderLedger, events EventPublisher, loc *time.Location) *Orders {
	if loc == nil {
		loc = time.UTC
	}
	return &Orders{ledger: ledger, events: events, loc: loc, now: time.Now}
}

func (s *Orders) ByStudent(ctx context.Context, studentID string) ([]domain.Order, error) {
	return s.ledger.ByStudent(ctx, studentID)
}

func (s *Orders) All(ctx context.Context) ([]domain.Order, error) {
	return s.ledger.All(ctx)
}

// UpdateStatus moves an order to any of the four states. The enum is
// the only structural guard; staff may move an order backwards.
func (s *Orders) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	updated, err := s.ledger.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, RouteOrderStatusChanged, NewOrderStatusChangedEvent(updated))
	}
	return updated, nil
}

func (s *Orders) CountToday(ctx context.Context) (int, error) {
	return s.ledger.CountByDay(ctx, domain.DayOf(s.now().In(s.loc)))
}

func (s *Orders) CountPending(ctx context.Context) (int, error) {
	return s.ledger.CountByStatus(ctx, domain.StatusPending)
}
