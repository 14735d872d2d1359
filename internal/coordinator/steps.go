package coordinator

import (
	"context"
	"fmt"
)

// StockAdjuster is the part of the inventory service the stock steps drive.
type StockAdjuster interface {
	DecreaseStock(ctx context.Context, apparelID string, quantity int) error
	IncreaseStock(ctx context.Context, apparelID string, quantity int) error
}

// --- ReserveStockStep ---

// ReserveStockStep takes quantity units of an apparel out of remote stock.
type ReserveStockStep struct {
	inventory StockAdjuster
	apparelID string
	quantity  int
}

func NewReserveStockStep(inventory StockAdjuster, apparelID string, quantity int) *ReserveStockStep {
	return &ReserveStockStep{
		inventory: inventory,
		apparelID: apparelID,
		quantity:  quantity,
	}
}

func (s *ReserveStockStep) Name() string {
	return fmt.Sprintf("Reserve_Stock_%s_x%d", s.apparelID, s.quantity)
}

func (s *ReserveStockStep) Execute(ctx context.Context) error {
	return s.inventory.DecreaseStock(ctx, s.apparelID, s.quantity)
}

func (s *ReserveStockStep) Compensate(ctx context.Context) error {
	return s.inventory.IncreaseStock(ctx, s.apparelID, s.quantity)
}

// --- ReleaseStockStep ---

// ReleaseStockStep gives quantity units of an apparel back to remote stock.
type ReleaseStockStep struct {
	inventory StockAdjuster
	apparelID string
	quantity  int
}

func NewReleaseStockStep(inventory StockAdjuster, apparelID string, quantity int) *ReleaseStockStep {
	return &ReleaseStockStep{
		inventory: inventory,
		apparelID: apparelID,
		quantity:  quantity,
	}
}

func (s *ReleaseStockStep) Name() string {
	return fmt.Sprintf("Release_Stock_%s_x%d", s.apparelID, s.quantity)
}

func (s *ReleaseStockStep) Execute(ctx context.Context) error {
	return s.inventory.IncreaseStock(ctx, s.apparelID, s.quantity)
}

// Compensate takes the units back. The inventory service rejects this if
// another order consumed them in the meantime; the saga logs that as a
// failed compensation.
func (s *ReleaseStockStep) Compensate(ctx context.Context) error {
	return s.inventory.DecreaseStock(ctx, s.apparelID, s.quantity)
}

// --- FuncStep ---

// FuncStep adapts plain functions, e.g. the final persistence write.
// A nil compensate is a no-op.
type FuncStep struct {
	name       string
	execute    func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

func NewFuncStep(name string, execute, compensate func(ctx context.Context) error) *FuncStep {
	return &FuncStep{name: name, execute: execute, compensate: compensate}
}

func (s *FuncStep) Name() string { return s.name }

func (s *FuncStep) Execute(ctx context.Context) error { return s.execute(ctx) }

func (s *FuncStep) Compensate(ctx context.Context) error {
	if s.compensate == nil {
		return nil
	}
	return s.compensate(ctx)
}
