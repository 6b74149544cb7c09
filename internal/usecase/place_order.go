package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

// Validation failures, each a distinct user-correctable reason.
var (
	ErrMissingStudentInfo = errors.New("missing student info")
	ErrNoItems            = errors.New("no items provided")
	ErrInvalidTotal       = errors.New("invalid total")
	ErrNoValidItems       = errors.New("no valid items")
)

// ErrTokenConflict is returned only after the allocate-insert sequence
// lost the race on every attempt.
var ErrTokenConflict = errors.New("could not allocate a pickup token")

// tokenRetryLimit bounds the allocate-insert retries on a duplicate
// (orderDate, tokenNumber) key. Collisions need two placements hitting
// the same day-slot at once, so a handful of attempts is plenty.
const tokenRetryLimit = 5

type RequestedLine struct {
	ItemID string
	Qty    int
}

type PlaceOrderInput struct {
	StudentID   string
	StudentName string
	Lines       []RequestedLine

	// ClientTotal is sanity-checked but never persisted; the stored
	// total is always recomputed from catalog prices.
	ClientTotal float64
}

type PlaceOrder struct {
	ledger  OrderLedger
	catalog Catalog
	events  EventPublisher

	loc *time.Location
	now func() time.Time
}

// NewPlaceOrder wires the placement service. loc fixes which wall clock
// decides the token day, so every instance attributes a near-midnight
// order to the same date; nil means UTC. events may be nil.
func NewPlaceOrder(ledger OrderLedger, catalog Catalog, events EventPublisher, loc *time.Location) *PlaceOrder {
	if loc == nil {
		loc = time.UTC
	}
	return &PlaceOrder{ledger: ledger, catalog: catalog, events: events, loc: loc, now: time.Now}
}

func (p *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if in.StudentID == "" || in.StudentName == "" {
		return nil, ErrMissingStudentInfo
	}
	if len(in.Lines) == 0 {
		return nil, ErrNoItems
	}
	if in.ClientTotal <= 0 {
		return nil, ErrInvalidTotal
	}

	ids := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		ids = append(ids, l.ItemID)
	}
	items, err := p.catalog.ItemsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	// Reprice from the catalog snapshot. Lines whose id does not
	// resolve are dropped, not defaulted.
	lines := make([]domain.OrderLine, 0, len(in.Lines))
	var total float64
	for _, l := range in.Lines {
		item, ok := items[l.ItemID]
		if !ok {
			continue
		}
		qty := l.Qty
		if qty < 1 {
			qty = 1
		}
		line := domain.OrderLine{ItemID: item.ID, Name: item.Name, Price: item.Price, Qty: qty}
		total += line.LineTotal()
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrNoValidItems
	}

	// Optimistic allocation: read today's max token, insert max+1, and
	// let the ledger's unique (orderDate, tokenNumber) key reject the
	// loser of a race. "Today" is re-normalized each attempt so a retry
	// that straddles midnight lands on the new day's sequence.
	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		now := p.now().In(p.loc)
		day := domain.DayOf(now)

		max, err := p.ledger.MaxTokenNumber(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("token lookup: %w", err)
		}
		next := max + 1

		order := &domain.Order{
			ID:          uuid.NewString(),
			StudentID:   in.StudentID,
			StudentName: in.StudentName,
			Lines:       lines,
			Total:       total,
			Status:      domain.StatusPending,
			OrderDate:   day,
			TokenNumber: next,
			Token:       domain.DisplayToken(next),
			CreatedAt:   now,
		}

		err = p.ledger.Insert(ctx, order)
		if errors.Is(err, ErrDuplicateToken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}

		if p.events != nil {
			_ = p.events.Publish(ctx, RouteOrderPlaced, NewOrderPlacedEvent(order))
		}
		return order, nil
	}
	return nil, ErrTokenConflict
}
