package repo

import (
	"context"
	"database/sql"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

type MySQLContactRepo struct{ db *sql.DB }

func NewMySQLContactRepo(db *sql.DB) *MySQLContactRepo { return &MySQLContactRepo{db: db} }

func (r *MySQLContactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO contacts (id, name, email, message, created_at) VALUES (?,?,?,?,?)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	return err
}

func (r *MySQLContactRepo) All(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ usecase.ContactStore = (*MySQLContactRepo)(nil)
