// Package memory is an in-process order store for development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
)

var _ ports.OrderStore = (*Store)(nil)

// Store keeps orders as encoded documents so callers never share memory
// with what is stored, mirroring a real document store.
type Store struct {
	mu     sync.RWMutex
	orders map[string]storedOrder
	seq    int64
}

type storedOrder struct {
	seq        int64
	customerID string
	doc        []byte
}

func NewStore() *Store {
	return &Store{orders: make(map[string]storedOrder)}
}

func (s *Store) Save(_ context.Context, order *domain.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("memory: encode order %s: %w", order.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.orders[order.ID].seq
	if seq == 0 {
		s.seq++
		seq = s.seq
	}
	s.orders[order.ID] = storedOrder{seq: seq, customerID: order.CustomerID, doc: doc}
	return nil
}

func (s *Store) Get(_ context.Context, customerID, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	stored, ok := s.orders[orderID]
	s.mu.RUnlock()

	if !ok || stored.customerID != customerID {
		return nil, apperr.NotFound("Order not found: %s", orderID)
	}
	return decode(stored.doc)
}

// ListByCustomer returns the customer's orders in creation order.
func (s *Store) ListByCustomer(_ context.Context, customerID string) ([]*domain.Order, error) {
	s.mu.RLock()
	matches := make([]storedOrder, 0)
	for _, stored := range s.orders {
		if stored.customerID == customerID {
			matches = append(matches, stored)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })

	out := make([]*domain.Order, 0, len(matches))
	for _, stored := range matches {
		o, err := decode(stored.doc)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func decode(doc []byte) (*domain.Order, error) {
	var o domain.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, fmt.Errorf("memory: decode order: %w", err)
	}
	return &o, nil
}
