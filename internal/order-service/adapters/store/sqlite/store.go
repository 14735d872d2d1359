// Package sqlite stores orders as JSON documents in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    order_id     TEXT PRIMARY KEY,
    customer_id  TEXT NOT NULL,
    document     TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
`

var _ ports.OrderStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the order. The rowid of an existing order is kept, so list
// order stays the creation order.
func (s *Store) Save(ctx context.Context, order *domain.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("sqlite: encode order %s: %w", order.ID, err)
	}

	const q = `
		INSERT INTO orders (order_id, customer_id, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET
			customer_id = excluded.customer_id,
			document    = excluded.document,
			updated_at  = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, q, order.ID, order.CustomerID, string(doc), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: save order %s: %w", order.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM orders WHERE order_id = ? AND customer_id = ?`,
		orderID, customerID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Order not found: %s", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %s: %w", orderID, err)
	}
	return decode(doc)
}

func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document FROM orders WHERE customer_id = ? ORDER BY rowid`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders of %s: %w", customerID, err)
	}
	defer rows.Close()

	out := make([]*domain.Order, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		o, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func decode(doc string) (*domain.Order, error) {
	var o domain.Order
	if err := json.Unmarshal([]byte(doc), &o); err != nil {
		return nil, fmt.Errorf("sqlite: decode order: %w", err)
	}
	return &o, nil
}
