package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

type MySQLMenuRepo struct{ db *sql.DB }

func NewMySQLMenuRepo(db *sql.DB) *MySQLMenuRepo { return &MySQLMenuRepo{db: db} }

func (r *MySQLMenuRepo) Insert(ctx context.Context, item *domain.MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO menu_items (id, name, price, image, created_at) VALUES (?,?,?,?,?)`,
		item.ID, item.Name, item.Price, item.Image, item.CreatedAt)
	return err
}

func (r *MySQLMenuRepo) All(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, price, image, created_at FROM menu_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Image, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *MySQLMenuRepo) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	_, err := r.db.ExecContext(ctx, `
UPDATE menu_items SET name = ?, price = ?, image = ? WHERE id = ?`,
		item.Name, item.Price, item.Image, item.ID)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, price, image, created_at FROM menu_items WHERE id = ?`, item.ID)
	var it domain.MenuItem
	if err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Image, &it.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// Delete is idempotent: removing an id that is already gone succeeds.
func (r *MySQLMenuRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	return err
}

// ItemsByID is the batched catalog read used by order placement: one
// query for the whole cart, unknown ids simply absent from the result.
func (r *MySQLMenuRepo) ItemsByID(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	if len(ids) == 0 {
		return map[string]domain.MenuItem{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, price, image, created_at FROM menu_items WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.MenuItem, len(ids))
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Image, &it.CreatedAt); err != nil {
			return nil, err
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

var (
	_ usecase.MenuStore = (*MySQLMenuRepo)(nil)
	_ usecase.Catalog   = (*MySQLMenuRepo)(nil)
)
