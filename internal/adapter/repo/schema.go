package repo

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables the service needs. The unique key on
// (order_date, token_number) is load-bearing: the placement retry
// protocol relies on the engine rejecting a second insert of the same
// day-slot.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			image VARCHAR(512) NOT NULL DEFAULT '',
			created_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id CHAR(36) PRIMARY KEY,
			student_id VARCHAR(64) NOT NULL,
			student_name VARCHAR(255) NOT NULL,
			items_json TEXT NOT NULL,
			total DECIMAL(10,2) NOT NULL,
			status VARCHAR(16) NOT NULL,
			order_date DATE NOT NULL,
			token_number INT NOT NULL,
			token VARCHAR(16) NOT NULL,
			created_at DATETIME(6) NOT NULL,
			UNIQUE KEY uq_orders_day_token (order_date, token_number),
			KEY idx_orders_student (student_id),
			KEY idx_orders_status (status)
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME(6) NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
