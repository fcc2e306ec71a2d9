package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes sales from purchase invoices.
type InvoiceKind string

const (
	InvoiceSales    InvoiceKind = "sales"
	InvoicePurchase InvoiceKind = "purchase"
)

// Invoice is a sales or purchase document, optionally tied to a counterparty.
type Invoice struct {
	InvoiceID string      `json:"invoiceID"` // Primary Key (e.g., UUID)
	Number    string      `json:"number"`
	Kind      InvoiceKind `json:"kind"`
	EntityID  string      `json:"entityID"` // Empty when unassigned
	IssueDate time.Time   `json:"issueDate"`
	DueDate   *time.Time  `json:"dueDate"`
	Status    string      `json:"status"`
	Amount    int64       `json:"amount"` // Minor currency units
	AuditFields
}

// InvoiceItem is one product line of an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unitPrice"`
	UnitCost    int64           `json:"unitCost"` // Estimated cost for margin math
	LineTotal   int64           `json:"lineTotal"`
}

// InvoiceItemRow is an invoice item joined with its invoice header.
type InvoiceItemRow struct {
	Item    InvoiceItem `json:"item"`
	Invoice Invoice     `json:"invoice"`
}
