package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/utils/accounting"
)

// inventoryService implements the InventorySvc interface.
type inventoryService struct {
	BaseService
	inventory portsrepo.InventoryReader
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventory portsrepo.InventoryReader) portssvc.InventorySvc {
	return &inventoryService{inventory: inventory}
}

// Ensure inventoryService implements the InventorySvc interface
var _ portssvc.InventorySvc = (*inventoryService)(nil)

// BalanceReport values stock as of a date by folding every movement up to it
// through the weighted-average accumulator, item by item.
func (s *inventoryService) BalanceReport(ctx context.Context, asOf time.Time) (*domain.InventoryBalanceReport, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	items, err := s.inventory.ListItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory items")
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	movements, err := s.inventory.MovementsUpTo(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve inventory movements",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve inventory movements: %w", err)
	}
	accounting.SortMovementsAsc(movements)

	accs := make(map[string]accounting.ItemAccumulator, len(items))
	for _, mv := range movements {
		accs[mv.Movement.ItemID] = accounting.ApplyMovement(accs[mv.Movement.ItemID], mv.Movement)
	}

	rows := make([]domain.InventoryBalanceRow, 0, len(items))
	totals := domain.InventoryTotals{OnHandQty: decimal.Zero}
	for _, item := range items {
		acc := accs[item.ItemID]
		rows = append(rows, domain.InventoryBalanceRow{
			ItemID:         item.ItemID,
			SKU:            item.SKU,
			ItemName:       item.Name,
			Unit:           item.Unit,
			QtyIn:          acc.QtyIn,
			QtyOut:         acc.QtyOut,
			OnHandQty:      acc.OnHand,
			AverageCost:    acc.AverageCost(),
			InventoryValue: acc.InventoryValue,
			COGS:           acc.COGS,
		})
		totals.InventoryValue += acc.InventoryValue
		totals.COGS += acc.COGS
		totals.OnHandQty = totals.OnHandQty.Add(acc.OnHand)
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].ItemName) < strings.ToLower(rows[j].ItemName)
	})

	s.LogInfo(ctx, "Inventory balance report generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("items", len(rows)),
		slog.Int64("inventory_value", totals.InventoryValue))
	return &domain.InventoryBalanceReport{
		Period: domain.ReportPeriod{To: asOf},
		Rows:   rows,
		Totals: totals,
	}, nil
}

// MovementReport lists movements in a period, newest first.
func (s *inventoryService) MovementReport(ctx context.Context, from, to time.Time, page, pageSize int, itemID string) (*domain.InventoryMovementPage, error) {
	period := defaultPeriod(from, to)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, movements, err := s.inventory.MovementsPage(ctx, period.From, period.To, page, pageSize, itemID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve inventory movement page",
			slog.Int("page", page), slog.String("itemID", itemID))
		return nil, fmt.Errorf("failed to retrieve inventory movements: %w", err)
	}

	rows := make([]domain.InventoryMovementRow, 0, len(movements))
	for _, mv := range movements {
		rows = append(rows, domain.InventoryMovementRow{
			MovementID:    mv.Movement.MovementID,
			ItemID:        mv.Item.ItemID,
			ItemName:      mv.Item.Name,
			Date:          mv.Movement.Date,
			Type:          mv.Movement.Type,
			Quantity:      mv.Movement.Quantity,
			UnitCost:      mv.Movement.UnitCost,
			MovementValue: mv.Movement.Quantity.Mul(decimal.NewFromInt(mv.Movement.UnitCost)).Round(0).IntPart(),
			Reference:     mv.Movement.Reference,
			Description:   mv.Movement.Description,
		})
	}

	s.LogInfo(ctx, "Inventory movement report generated",
		slog.Int("page", page), slog.Int("rows", len(rows)), slog.Int("total", total))
	return &domain.InventoryMovementPage{
		Period:   period,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Rows:     rows,
	}, nil
}
