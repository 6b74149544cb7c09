package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

const orderColumns = `id, student_id, student_name, items_json, total, status, order_date, token_number, token, created_at`

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Insert(ctx context.Context, o *domain.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (`+orderColumns+`)
VALUES (?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.StudentID, o.StudentName, lines, o.Total, string(o.Status),
		o.OrderDate.Format("2006-01-02"), o.TokenNumber, o.Token, o.CreatedAt)
	if isDuplicateTokenErr(err) {
		return usecase.ErrDuplicateToken
	}
	return err
}

// isDuplicateTokenErr recognizes a MySQL duplicate-key error (1062) on
// the per-day token index, so the caller can tell a lost allocation
// race apart from any other write failure.
func isDuplicateTokenErr(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return false
	}
	return strings.Contains(me.Message, "uq_orders_day_token")
}

func (r *MySQLOrderRepo) ByStudent(ctx context.Context, studentID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE student_id = ? ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *MySQLOrderRepo) All(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *MySQLOrderRepo) MaxTokenNumber(ctx context.Context, day time.Time) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(MAX(token_number), 0) FROM orders WHERE order_date = ?`,
		day.Format("2006-01-02")).Scan(&max)
	return max, err
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	// MySQL reports zero affected rows for a no-op update, so a missing
	// id is detected by the read-back instead of RowsAffected.
	_, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, err
	}
	return r.byID(ctx, id)
}

func (r *MySQLOrderRepo) byID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *MySQLOrderRepo) CountByDay(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM orders WHERE order_date = ?`, day.Format("2006-01-02")).Scan(&n)
	return n, err
}

func (r *MySQLOrderRepo) CountByStatus(ctx context.Context, status domain.Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM orders WHERE status = ?`, string(status)).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		lines  []byte
		status string
	)
	err := row.Scan(&o.ID, &o.StudentID, &o.StudentName, &lines, &o.Total, &status,
		&o.OrderDate, &o.TokenNumber, &o.Token, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

var _ usecase.OrderLedger = (*MySQLOrderRepo)(nil)
