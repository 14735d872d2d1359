// Package app is the order orchestrator. It owns the order lifecycle and
// keeps the remote apparel stock consistent with the quantities every
// order reserves.
//
// Every mutating operation follows the same shape:
//
//  1. load and validate, fetch collaborator snapshots
//  2. plan the stock adjustments (domain.PlanAdjustments)
//  3. check phase: read remote stock for every reservation and fail with
//     StockExceeded before anything is mutated
//  4. apply phase: run the adjustments and the final store write as a
//     saga, compensating applied adjustments in reverse on failure
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/footballstore-orders/internal/coordinator"
	"github.com/jcmexdev/footballstore-orders/internal/coordinator/sagalog"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/cache"
)

const tracerName = "github.com/jcmexdev/footballstore-orders/internal/order-service/app"

// Deps are the collaborators the orchestrator cannot run without.
type Deps struct {
	Store      ports.OrderStore
	Inventory  ports.Inventory
	Customers  ports.CustomerDirectory
	Warehouses ports.WarehouseDirectory
	Catalog    ports.Catalog
}

type Option func(*OrderService)

// WithIdempotencyCache enables replay of creates that carry an idempotency
// key. Entries expire after ttl.
func WithIdempotencyCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *OrderService) {
		s.cache = c
		s.idempotencyTTL = ttl
	}
}

// WithSagaLog persists every reservation saga transition.
func WithSagaLog(repo sagalog.Repository) Option {
	return func(s *OrderService) { s.sagaLog = repo }
}

func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *OrderService) { s.newID = newID }
}

type OrderService struct {
	deps           Deps
	cache          cache.Cache
	idempotencyTTL time.Duration
	sagaLog        sagalog.Repository
	now            func() time.Time
	newID          func() string
	tracer         trace.Tracer
}

func NewOrderService(deps Deps, opts ...Option) *OrderService {
	s := &OrderService{
		deps:   deps,
		now:    time.Now,
		newID:  uuid.NewString,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder validates req, snapshots the customer, warehouse and apparel,
// reserves the merged quantities and persists a CREATED order. A repeated
// call with the same non-empty idempotencyKey returns the first order.
func (s *OrderService) CreateOrder(ctx context.Context, customerID, idempotencyKey string, req domain.OrderRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.create", trace.WithAttributes(
		attribute.String("customer.id", customerID),
		attribute.Int("order.items", len(req.Items)),
	))
	defer span.End()

	if err := req.Validate(true); err != nil {
		return nil, fail(span, err)
	}

	if existing := s.replay(ctx, customerID, idempotencyKey); existing != nil {
		slog.InfoContext(ctx, "create replayed from idempotency key", "order_id", existing.ID, "customer_id", customerID)
		return existing, nil
	}

	customer, err := s.deps.Customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fail(span, err)
	}
	warehouse, err := s.deps.Warehouses.GetWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, fail(span, err)
	}
	apparel, err := s.snapshotApparel(ctx, req)
	if err != nil {
		return nil, fail(span, err)
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:            s.newID(),
		CustomerID:    customerID,
		Customer:      customer,
		WarehouseID:   req.WarehouseID,
		Warehouse:     warehouse,
		Status:        domain.StatusCreated,
		PaymentStatus: domain.PaymentPending,
		OrderDate:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		UpdatedAt:     now,
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}
	s.applyItems(ctx, order, req, apparel)
	span.SetAttributes(attribute.String("order.id", order.ID))

	plan := domain.PlanAdjustments(domain.NewQuantities(), req.Quantities())
	if err := s.reconcile(ctx, "create", order, plan); err != nil {
		return nil, fail(span, err)
	}

	s.remember(ctx, customerID, idempotencyKey, order.ID)
	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer_id", customerID,
		"total", order.TotalPrice.Amount.StringFixed(2),
		"currency", order.TotalPrice.Currency,
	)
	return order, nil
}

// UpdateOrder replaces the item list of a non-terminal order and moves only
// the net stock difference per apparel. Omitted statuses keep their value;
// a new warehouse id refreshes the warehouse snapshot.
func (s *OrderService) UpdateOrder(ctx context.Context, customerID, orderID string, req domain.OrderRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.update", trace.WithAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("order.id", orderID),
	))
	defer span.End()

	current, err := s.deps.Store.Get(ctx, customerID, orderID)
	if err != nil {
		return nil, fail(span, err)
	}
	if current.Status.Terminal() {
		return nil, fail(span, apperr.OrderStateConflict("Order %s is %s and can no longer be modified", orderID, current.Status))
	}
	if err := req.Validate(false); err != nil {
		return nil, fail(span, err)
	}

	updated := *current
	if req.WarehouseID != "" && req.WarehouseID != current.WarehouseID {
		warehouse, err := s.deps.Warehouses.GetWarehouse(ctx, req.WarehouseID)
		if err != nil {
			return nil, fail(span, err)
		}
		updated.WarehouseID = req.WarehouseID
		updated.Warehouse = warehouse
	}
	apparel, err := s.snapshotApparel(ctx, req)
	if err != nil {
		return nil, fail(span, err)
	}

	s.applyItems(ctx, &updated, req, apparel)
	if req.OrderStatus != "" {
		updated.Status = req.OrderStatus
	}
	if req.PaymentStatus != "" {
		updated.PaymentStatus = req.PaymentStatus
	}
	updated.UpdatedAt = s.now().UTC()

	plan := domain.PlanAdjustments(current.ReservedQuantities(), req.Quantities())
	if err := s.reconcile(ctx, "update", &updated, plan); err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "order updated",
		"order_id", orderID,
		"customer_id", customerID,
		"adjustments", len(plan),
		"status", updated.Status,
	)
	return &updated, nil
}

// CancelOrder releases every reserved unit and marks the order CANCELLED
// with a REFUNDED payment. Cancelling a cancelled order is a no-op.
func (s *OrderService) CancelOrder(ctx context.Context, customerID, orderID string) error {
	ctx, span := s.tracer.Start(ctx, "orders.cancel", trace.WithAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("order.id", orderID),
	))
	defer span.End()

	current, err := s.deps.Store.Get(ctx, customerID, orderID)
	if err != nil {
		return fail(span, err)
	}
	switch current.Status {
	case domain.StatusCompleted:
		return fail(span, apperr.OrderStateConflict("Order %s is COMPLETED and cannot be cancelled", orderID))
	case domain.StatusCancelled:
		slog.InfoContext(ctx, "order already cancelled", "order_id", orderID)
		return nil
	}

	cancelled := *current
	cancelled.Status = domain.StatusCancelled
	cancelled.PaymentStatus = domain.PaymentRefunded
	cancelled.UpdatedAt = s.now().UTC()

	plan := domain.PlanAdjustments(current.ReservedQuantities(), domain.NewQuantities())
	if err := s.reconcile(ctx, "cancel", &cancelled, plan); err != nil {
		return fail(span, err)
	}

	slog.InfoContext(ctx, "order cancelled", "order_id", orderID, "customer_id", customerID, "released", len(plan))
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.get", trace.WithAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("order.id", orderID),
	))
	defer span.End()

	order, err := s.deps.Store.Get(ctx, customerID, orderID)
	if err != nil {
		return nil, fail(span, err)
	}
	return order, nil
}

// ListOrders never returns nil; an unknown customer has no orders.
func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.list", trace.WithAttributes(
		attribute.String("customer.id", customerID),
	))
	defer span.End()

	orders, err := s.deps.Store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fail(span, err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// snapshotApparel fetches each distinct apparel once, in request order.
func (s *OrderService) snapshotApparel(ctx context.Context, req domain.OrderRequest) (map[string]domain.ApparelSnapshot, error) {
	out := make(map[string]domain.ApparelSnapshot, len(req.Items))
	for _, it := range req.Items {
		if _, ok := out[it.ApparelID]; ok {
			continue
		}
		snap, err := s.deps.Catalog.GetApparel(ctx, it.ApparelID)
		if err != nil {
			return nil, err
		}
		out[it.ApparelID] = snap
	}
	return out, nil
}

// applyItems replaces the order lines with one line per requested item and
// recomputes the total.
func (s *OrderService) applyItems(ctx context.Context, order *domain.Order, req domain.OrderRequest, apparel map[string]domain.ApparelSnapshot) {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ID:        s.newID(),
			Apparel:   apparel[it.ApparelID],
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			LineTotal: domain.LineTotal(it.UnitPrice, it.Quantity, it.Discount),
		})
	}

	currency, mixed := req.Currency()
	if mixed {
		slog.WarnContext(ctx, "order lines use more than one currency, total is reported in the first",
			"order_id", order.ID, "currency", currency)
	}
	order.Items = items
	order.TotalPrice = domain.Total(items, currency)
}

// reconcile runs the check phase, then applies plan and persists order as
// one saga.
func (s *OrderService) reconcile(ctx context.Context, operation string, order *domain.Order, plan []domain.Adjustment) error {
	if err := s.checkStock(ctx, plan); err != nil {
		return err
	}

	steps := make([]coordinator.Step, 0, len(plan)+1)
	for _, adj := range plan {
		if adj.Reserve() {
			steps = append(steps, coordinator.NewReserveStockStep(s.deps.Inventory, adj.ApparelID, adj.Quantity()))
		} else {
			steps = append(steps, coordinator.NewReleaseStockStep(s.deps.Inventory, adj.ApparelID, adj.Quantity()))
		}
	}
	steps = append(steps, coordinator.NewFuncStep("Persist_Order", func(ctx context.Context) error {
		return s.deps.Store.Save(ctx, order)
	}, nil))

	sagaID := fmt.Sprintf("%s:%s:%s", operation, order.ID, uuid.NewString())
	return coordinator.NewOrchestrator(sagaID, steps, s.sagaLog).
		WithPayload(planPayload(order.ID, plan)).
		Start(ctx)
}

// checkStock fails with StockExceeded on the first reservation the remote
// stock cannot cover. Releases need no check.
func (s *OrderService) checkStock(ctx context.Context, plan []domain.Adjustment) error {
	for _, adj := range plan {
		if !adj.Reserve() {
			continue
		}
		available, err := s.deps.Inventory.GetStock(ctx, adj.ApparelID)
		if err != nil {
			return err
		}
		if available < adj.Quantity() {
			return apperr.StockExceeded(adj.ApparelID, adj.Quantity(), available)
		}
	}
	return nil
}

func (s *OrderService) idempotencyKey(customerID, key string) string {
	return s.cache.GenerateKey("create", customerID, key)
}

// replay returns the order a previous create with the same key produced.
// Cache problems never fail the request.
func (s *OrderService) replay(ctx context.Context, customerID, key string) *domain.Order {
	if s.cache == nil || key == "" {
		return nil
	}
	orderID, err := s.cache.Get(ctx, s.idempotencyKey(customerID, key))
	if err != nil {
		slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
		return nil
	}
	if orderID == "" {
		return nil
	}
	order, err := s.deps.Store.Get(ctx, customerID, orderID)
	if err != nil {
		slog.WarnContext(ctx, "idempotency key points to unreadable order", "order_id", orderID, "error", err)
		return nil
	}
	return order
}

func (s *OrderService) remember(ctx context.Context, customerID, key, orderID string) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, s.idempotencyKey(customerID, key), orderID, s.idempotencyTTL); err != nil {
		slog.WarnContext(ctx, "idempotency store failed", "order_id", orderID, "error", err)
	}
}

type planEntry struct {
	ApparelID string `json:"apparelId"`
	Delta     int    `json:"delta"`
}

func planPayload(orderID string, plan []domain.Adjustment) string {
	entries := make([]planEntry, len(plan))
	for i, adj := range plan {
		entries[i] = planEntry{ApparelID: adj.ApparelID, Delta: adj.Delta}
	}
	raw, _ := json.Marshal(struct {
		OrderID     string      `json:"orderId"`
		Adjustments []planEntry `json:"adjustments"`
	}{orderID, entries})
	return string(raw)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
