package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indicates the direction of a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// InventoryItem identifies a stocked product.
type InventoryItem struct {
	ItemID string `json:"itemID"` // Primary Key (e.g., UUID)
	SKU    string `json:"sku"`    // Nullable
	Name   string `json:"name"`
	Unit   string `json:"unit"` // Unit label, e.g. "unit", "kg"
	AuditFields
}

// InventoryMovement is one stock event. Quantities are positive decimals;
// unit cost is an integer in minor currency units. Movements are immutable
// once recorded; costing is recomputed from full history per report run.
type InventoryMovement struct {
	MovementID  string          `json:"movementID"`
	ItemID      string          `json:"itemID"`
	Date        time.Time       `json:"date"`
	Type        MovementType    `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"` // > 0
	UnitCost    int64           `json:"unitCost"` // Minor currency units; 0 on OUT means "use average"
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	AuditFields
}

// ItemMovement is a movement joined with its item, as fetched for reports.
type ItemMovement struct {
	Movement InventoryMovement `json:"movement"`
	Item     InventoryItem     `json:"item"`
}
