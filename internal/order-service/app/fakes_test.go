package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jcmexdev/footballstore-orders/internal/coordinator/sagalog"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/cache"
)

// fakeInventory behaves like the apparels service stock endpoints and
// records every mutating call as "decrease:A:2" / "increase:A:2".
type fakeInventory struct {
	mu       sync.Mutex
	stock    map[string]int
	calls    []string
	reads    []string
	failNext map[string]error
}

var _ ports.Inventory = (*fakeInventory)(nil)

func newInventory(stock map[string]int) *fakeInventory {
	return &fakeInventory{stock: stock, failNext: map[string]error{}}
}

func (f *fakeInventory) GetStock(_ context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, id)
	n, ok := f.stock[id]
	if !ok {
		return 0, apperr.NotFound("Apparel not found: %s", id)
	}
	return n, nil
}

func (f *fakeInventory) DecreaseStock(_ context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := fmt.Sprintf("decrease:%s:%d", id, qty)
	f.calls = append(f.calls, call)
	if err, ok := f.failNext[call]; ok {
		delete(f.failNext, call)
		return err
	}
	if f.stock[id] < qty {
		return apperr.InvalidInput("Insufficient stock for %s", id)
	}
	f.stock[id] -= qty
	return nil
}

func (f *fakeInventory) IncreaseStock(_ context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := fmt.Sprintf("increase:%s:%d", id, qty)
	f.calls = append(f.calls, call)
	if err, ok := f.failNext[call]; ok {
		delete(f.failNext, call)
		return err
	}
	f.stock[id] += qty
	return nil
}

func (f *fakeInventory) mutations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeDirectory serves customers, warehouses and apparel from maps.
type fakeDirectory struct {
	customers  map[string]domain.CustomerSnapshot
	warehouses map[string]domain.WarehouseSnapshot
	apparel    map[string]domain.ApparelSnapshot
	lookups    int
}

func (f *fakeDirectory) GetCustomer(_ context.Context, id string) (domain.CustomerSnapshot, error) {
	f.lookups++
	c, ok := f.customers[id]
	if !ok {
		return c, apperr.NotFound("Customer not found: %s", id)
	}
	return c, nil
}

func (f *fakeDirectory) GetWarehouse(_ context.Context, id string) (domain.WarehouseSnapshot, error) {
	f.lookups++
	w, ok := f.warehouses[id]
	if !ok {
		return w, apperr.NotFound("Warehouse not found: %s", id)
	}
	return w, nil
}

func (f *fakeDirectory) GetApparel(_ context.Context, id string) (domain.ApparelSnapshot, error) {
	f.lookups++
	a, ok := f.apparel[id]
	if !ok {
		return a, apperr.NotFound("Apparel not found: %s", id)
	}
	return a, nil
}

// flakyStore fails Save while saveErr is set.
type flakyStore struct {
	ports.OrderStore
	saveErr error
}

func (s *flakyStore) Save(ctx context.Context, o *domain.Order) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.OrderStore.Save(ctx, o)
}

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

var _ cache.Cache = (*mapCache)(nil)

func newMapCache() *mapCache { return &mapCache{values: map[string]string{}} }

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (c *mapCache) GenerateKey(operation string, parts ...string) string {
	return cache.GenerateKey("order", operation, parts...)
}

func (c *mapCache) Close() error { return nil }

type recordingSagaLog struct {
	mu      sync.Mutex
	entries []*sagalog.SagaLog
}

func (r *recordingSagaLog) Save(_ context.Context, e *sagalog.SagaLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

var errStoreDown = errors.New("store unavailable")
