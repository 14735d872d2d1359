// Package postgres stores orders as JSONB documents in PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
)

var _ ports.OrderStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
}

// Open connects, pings and migrates.
func Open(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse connection string: %w", err)
	}
	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			seq          BIGSERIAL,
			order_id     VARCHAR(64) PRIMARY KEY,
			customer_id  VARCHAR(64) NOT NULL,
			document     JSONB NOT NULL,
			updated_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id, seq)`,
	}
	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Save(ctx context.Context, order *domain.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("postgres: encode order %s: %w", order.ID, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (order_id, customer_id, document, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (order_id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			document    = EXCLUDED.document,
			updated_at  = NOW()`,
		order.ID, order.CustomerID, doc,
	)
	if err != nil {
		return fmt.Errorf("postgres: save order %s: %w", order.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM orders WHERE order_id = $1 AND customer_id = $2`,
		orderID, customerID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Order not found: %s", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get order %s: %w", orderID, err)
	}
	return decode(doc)
}

func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT document FROM orders WHERE customer_id = $1 ORDER BY seq`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list orders of %s: %w", customerID, err)
	}
	defer rows.Close()

	out := make([]*domain.Order, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("postgres: scan order: %w", err)
		}
		o, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func decode(doc []byte) (*domain.Order, error) {
	var o domain.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, fmt.Errorf("postgres: decode order: %w", err)
	}
	return &o, nil
}
