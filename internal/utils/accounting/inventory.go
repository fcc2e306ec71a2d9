package accounting

import (
	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ItemAccumulator is the weighted-average costing state for one inventory
// item. Quantities are decimals; values and COGS are integers in minor
// currency units.
type ItemAccumulator struct {
	QtyIn          decimal.Decimal
	QtyOut         decimal.Decimal
	OnHand         decimal.Decimal
	InventoryValue int64
	COGS           int64
}

// AverageCost is round(inventory value / on-hand quantity) while stock is
// held, zero otherwise.
func (a ItemAccumulator) AverageCost() int64 {
	if a.OnHand.Sign() <= 0 {
		return 0
	}
	return decimal.NewFromInt(a.InventoryValue).Div(a.OnHand).Round(0).IntPart()
}

// ApplyMovement folds one stock movement into the accumulator. Movements
// must be applied in chronological order because the average cost depends on
// history order. An OUT with zero unit cost consumes at the current average;
// on-hand quantity and inventory value floor at zero, silently absorbing
// over-consumption past recorded stock.
func ApplyMovement(acc ItemAccumulator, mv domain.InventoryMovement) ItemAccumulator {
	qty := mv.Quantity
	if qty.Sign() <= 0 {
		return acc
	}

	if mv.Type == domain.MovementOut {
		useCost := mv.UnitCost
		if useCost <= 0 {
			useCost = acc.AverageCost()
		}
		cogsValue := qty.Mul(decimal.NewFromInt(useCost)).Round(0).IntPart()
		acc.QtyOut = acc.QtyOut.Add(qty)
		acc.COGS += cogsValue
		acc.OnHand = acc.OnHand.Sub(qty)
		if acc.OnHand.Sign() < 0 {
			acc.OnHand = decimal.Zero
		}
		acc.InventoryValue -= cogsValue
		if acc.InventoryValue < 0 {
			acc.InventoryValue = 0
		}
		return acc
	}

	// IN and ADJUSTMENT both add positive quantity at an explicit valuation.
	acc.QtyIn = acc.QtyIn.Add(qty)
	acc.OnHand = acc.OnHand.Add(qty)
	acc.InventoryValue += qty.Mul(decimal.NewFromInt(mv.UnitCost)).Round(0).IntPart()
	return acc
}
