package usecase

import (
	"context"
	"errors"
	"time"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

// Errors adapters are expected to map their storage failures onto.
// Anything else bubbling out of a port is treated as a backend fault
// and surfaced with its message intact.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateToken = errors.New("duplicate token number for day")
)

// OrderLedger is the durable order store. Insert must fail with
// ErrDuplicateToken when (orderDate, tokenNumber) is already taken --
// the storage engine's unique key is the only arbiter of the daily
// token sequence.
type OrderLedger interface {
	Insert(ctx context.Context, o *domain.Order) error
	ByStudent(ctx context.Context, studentID string) ([]domain.Order, error)
	All(ctx context.Context) ([]domain.Order, error)
	MaxTokenNumber(ctx context.Context, day time.Time) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	CountByDay(ctx context.Context, day time.Time) (int, error)
	CountByStatus(ctx context.Context, status domain.Status) (int, error)
}

// Catalog resolves menu item ids to their current name and price in one
// batched read. Unknown ids are simply absent from the result; an error
// means the backing store itself failed.
type Catalog interface {
	ItemsByID(ctx context.Context, ids []string) (map[string]domain.MenuItem, error)
}

type MenuStore interface {
	Insert(ctx context.Context, item *domain.MenuItem) error
	All(ctx context.Context) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// MenuCache fronts MenuStore.All with a short-lived snapshot.
type MenuCache interface {
	GetAll(ctx context.Context) ([]domain.MenuItem, bool, error)
	SetAll(ctx context.Context, items []domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

type ContactStore interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) error
	All(ctx context.Context) ([]domain.ContactMessage, error)
}

// EventPublisher fans order lifecycle events out to interested
// consumers (kitchen displays, notification senders). Publishing is
// best-effort; a failure never fails the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
