package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

var ErrInvalidMenuItem = errors.New("menu item needs a name and a non-negative price")

// Menu owns the item catalog's write path and the cached read path.
// Mutations drop the cached listing instead of patching it.
type Menu struct {
	store MenuStore
	cache MenuCache
}

// NewMenu wires the menu service. cache may be nil, in which case every
// listing hits the store.
func NewMenu(store MenuStore, cache MenuCache) *Menu {
	return &Menu{store: store, cache: cache}
}

func (m *Menu) Add(ctx context.Context, name string, price float64, image string) (*domain.MenuItem, error) {
	if name == "" || price < 0 {
		return nil, ErrInvalidMenuItem
	}
	item := &domain.MenuItem{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Insert(ctx, item); err != nil {
		return nil, err
	}
	m.invalidate(ctx)
	return item, nil
}

func (m *Menu) List(ctx context.Context) ([]domain.MenuItem, error) {
	if m.cache != nil {
		if items, ok, err := m.cache.GetAll(ctx); err == nil && ok {
			return items, nil
		}
	}
	items, err := m.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if m.cache != nil {
		_ = m.cache.SetAll(ctx, items)
	}
	return items, nil
}

func (m *Menu) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" || item.Price < 0 {
		return nil, ErrInvalidMenuItem
	}
	updated, err := m.store.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	m.invalidate(ctx)
	return updated, nil
}

func (m *Menu) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.invalidate(ctx)
	return nil
}

func (m *Menu) invalidate(ctx context.Context) {
	if m.cache != nil {
		_ = m.cache.Invalidate(ctx)
	}
}
