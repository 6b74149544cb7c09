package usecase

import (
	"context"
	"sync"
	"time"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

// fakeLedger mimics the MySQL ledger including its unique
// (orderDate, tokenNumber) key, so the allocation race is observable
// in-process.
type fakeLedger struct {
	mu     sync.Mutex
	orders []domain.Order
	taken  map[string]bool

	// insertHook runs inside Insert before the uniqueness check, with
	// the lock held. Lets tests inject duplicate-key conflicts.
	insertHook func(o *domain.Order) error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{taken: map[string]bool{}}
}

func dayKey(day time.Time, token int) string {
	return day.Format("2006-01-02") + "#" + domain.DisplayToken(token)
}

func (f *fakeLedger) Insert(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertHook != nil {
		if err := f.insertHook(o); err != nil {
			return err
		}
	}
	key := dayKey(o.OrderDate, o.TokenNumber)
	if f.taken[key] {
		return ErrDuplicateToken
	}
	f.taken[key] = true
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeLedger) ByStudent(_ context.Context, studentID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].StudentID == studentID {
			out = append(out, f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) All(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Order, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		out = append(out, f.orders[i])
	}
	return out, nil
}

func (f *fakeLedger) MaxTokenNumber(_ context.Context, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, o := range f.orders {
		if o.OrderDate.Equal(day) && o.TokenNumber > max {
			max = o.TokenNumber
		}
	}
	return max, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeLedger) CountByDay(_ context.Context, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.orders {
		if o.OrderDate.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) CountByStatus(_ context.Context, status domain.Status) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeCatalog struct {
	items map[string]domain.MenuItem
	err   error
}

func (f *fakeCatalog) ItemsByID(_ context.Context, ids []string) (map[string]domain.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]domain.MenuItem{}
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func twoItemCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string]domain.MenuItem{
		"1": {ID: "1", Name: "Veg Thali", Price: 50},
		"2": {ID: "2", Name: "Masala Dosa", Price: 30},
	}}
}
