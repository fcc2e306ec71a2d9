package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is the inclusive date range a report covers.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AccountTurnover is the aggregated debit/credit activity of one account
// over a period, as fetched by the excluded persistence layer.
type AccountTurnover struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
}

// TrialBalanceRow uses the raw net split: net sign alone decides whether the
// balance shows on the debit or credit side, independent of account nature.
type TrialBalanceRow struct {
	AccountCode    string `json:"accountCode"`
	AccountName    string `json:"accountName"`
	DebitTurnover  int64  `json:"debitTurnover"`
	CreditTurnover int64  `json:"creditTurnover"`
	DebitBalance   int64  `json:"debitBalance"`
	CreditBalance  int64  `json:"creditBalance"`
}

// TrialBalanceTotals sums the rows of the returned page window.
type TrialBalanceTotals struct {
	DebitTurnover  int64 `json:"debitTurnover"`
	CreditTurnover int64 `json:"creditTurnover"`
	DebitBalance   int64 `json:"debitBalance"`
	CreditBalance  int64 `json:"creditBalance"`
}

// TrialBalanceReport serves both the trial balance and the general ledger
// view, distinguished by ReportType.
type TrialBalanceReport struct {
	ReportType string             `json:"reportType"`
	Period     ReportPeriod       `json:"period"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Total      int                `json:"total"`
	Rows       []TrialBalanceRow  `json:"rows"`
	Totals     TrialBalanceTotals `json:"totals"`
}

// StatementNode is one account in a balance sheet section tree. Balance is
// the rolled-up subtree total, nature-aware and clamped non-negative.
type StatementNode struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Nature      AccountNature   `json:"nature"`
	Balance     int64           `json:"balance"`
	Children    []StatementNode `json:"children"`
}

// StatementSection groups the root nodes of one balance sheet side. Total
// sums root-level nodes only; children are already folded into their parents.
type StatementSection struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Items []StatementNode `json:"items"`
	Total int64           `json:"total"`
}

// BalanceSheetTotals carries the section totals.
type BalanceSheetTotals struct {
	Assets      int64 `json:"assets"`
	Liabilities int64 `json:"liabilities"`
	Equity      int64 `json:"equity"`
}

// BalanceSheetReport is a point-in-time statement computed cumulatively from
// all history up to the period end.
type BalanceSheetReport struct {
	Period            ReportPeriod       `json:"period"`
	ComparativePeriod *ReportPeriod      `json:"comparativePeriod"`
	Assets            StatementSection   `json:"assets"`
	Liabilities       StatementSection   `json:"liabilities"`
	Equity            StatementSection   `json:"equity"`
	Totals            BalanceSheetTotals `json:"totals"`
}

// IncomeStatementRow is one contributing account. Amount is the nature-aware
// period balance clamped to zero when negative.
type IncomeStatementRow struct {
	AccountID      string        `json:"accountID"`
	AccountCode    string        `json:"accountCode"`
	AccountName    string        `json:"accountName"`
	Nature         AccountNature `json:"nature"`
	Amount         int64         `json:"amount"`
	DebitTurnover  int64         `json:"debitTurnover"`
	CreditTurnover int64         `json:"creditTurnover"`
}

// IncomeSection is one income statement category.
type IncomeSection struct {
	Key   string               `json:"key"`
	Label string               `json:"label"`
	Items []IncomeStatementRow `json:"items"`
	Total int64                `json:"total"`
}

// IncomeStatementTotals derives gross and net profit from the categories.
type IncomeStatementTotals struct {
	Revenue           int64 `json:"revenue"`
	COGS              int64 `json:"cogs"`
	GrossProfit       int64 `json:"grossProfit"`
	OperatingExpenses int64 `json:"operatingExpenses"`
	OtherExpenses     int64 `json:"otherExpenses"`
	NetProfit         int64 `json:"netProfit"`
}

// IncomeStatementReport covers a period.
type IncomeStatementReport struct {
	Period            ReportPeriod          `json:"period"`
	Revenue           IncomeSection         `json:"revenue"`
	COGS              IncomeSection         `json:"cogs"`
	OperatingExpenses IncomeSection         `json:"operatingExpenses"`
	OtherExpenses     IncomeSection         `json:"otherExpenses"`
	Totals            IncomeStatementTotals `json:"totals"`
}

// CashFlowLine is one contributing transaction's disclosure line.
type CashFlowLine struct {
	AccountCode string `json:"accountCode"` // First counterparty code
	Label       string `json:"label"`
	Amount      int64  `json:"amount"` // Cash delta, signed
}

// CashFlowSection accumulates one activity class.
type CashFlowSection struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Lines []CashFlowLine `json:"lines"`
	Net   int64          `json:"net"`
}

// CashFlowReport classifies each transaction's cash delta into operating,
// investing, or financing activity.
type CashFlowReport struct {
	Period        ReportPeriod    `json:"period"`
	Operating     CashFlowSection `json:"operating"`
	Investing     CashFlowSection `json:"investing"`
	Financing     CashFlowSection `json:"financing"`
	NetCashChange int64           `json:"netCashChange"`
}

// JournalLine is a display line of a journal entry.
type JournalLine struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
	Note        string `json:"note"`
}

// JournalEntry is one transaction with totals recomputed from its lines.
type JournalEntry struct {
	TransactionID string        `json:"transactionID"`
	Date          time.Time     `json:"date"`
	Reference     string        `json:"reference"`
	Description   string        `json:"description"`
	Lines         []JournalLine `json:"lines"`
	TotalDebit    int64         `json:"totalDebit"`
	TotalCredit   int64         `json:"totalCredit"`
}

// JournalPage is a page of the general journal, newest first.
type JournalPage struct {
	ReportType string         `json:"reportType"`
	Period     ReportPeriod   `json:"period"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	Entries    []JournalEntry `json:"entries"`
}

// LedgerAccountSummary heads an account ledger: period turnovers plus the
// closing running balance.
type LedgerAccountSummary struct {
	AccountCode    string `json:"accountCode"`
	AccountName    string `json:"accountName"`
	DebitTurnover  int64  `json:"debitTurnover"`
	CreditTurnover int64  `json:"creditTurnover"`
	Balance        int64  `json:"balance"`
}

// LedgerRow is one posting with the nature-aware running balance after it.
type LedgerRow struct {
	Date           time.Time `json:"date"`
	TransactionID  string    `json:"transactionID"`
	Reference      string    `json:"reference"`
	Description    string    `json:"description"`
	Debit          int64     `json:"debit"`
	Credit         int64     `json:"credit"`
	RunningBalance int64     `json:"runningBalance"`
	Note           string    `json:"note"`
}

// AccountLedgerReport walks one account's postings chronologically from an
// opening balance computed strictly before the window. The cash/bank
// statement is this view specialised to one account code.
type AccountLedgerReport struct {
	ReportType string               `json:"reportType"`
	Period     ReportPeriod         `json:"period"`
	Account    LedgerAccountSummary `json:"account"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	Total      int                  `json:"total"`
	Rows       []LedgerRow          `json:"rows"`
}

// PersonRunningBalanceRow is one movement of a counterparty ledger.
type PersonRunningBalanceRow struct {
	Date           time.Time `json:"date"`
	TransactionID  string    `json:"transactionID"`
	Reference      string    `json:"reference"`
	Description    string    `json:"description"`
	DebitEffect    int64     `json:"debitEffect"`  // Amount the balance grew
	CreditEffect   int64     `json:"creditEffect"` // Amount the balance shrank
	RunningBalance int64     `json:"runningBalance"`
}

// PersonRunningBalanceReport is the receivable or payable ledger of one
// entity in one role.
type PersonRunningBalanceReport struct {
	Period         ReportPeriod              `json:"period"`
	EntityID       string                    `json:"entityID"`
	EntityName     string                    `json:"entityName"`
	Role           EntityRole                `json:"role"`
	Rows           []PersonRunningBalanceRow `json:"rows"`
	ClosingBalance int64                     `json:"closingBalance"`
}

// BucketAmount is one aging bucket of a row, labeled by its band.
type BucketAmount struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// AgingRow is one entity's outstanding balance split into age buckets.
type AgingRow struct {
	EntityID   string         `json:"entityID"`
	EntityName string         `json:"entityName"`
	EntityType string         `json:"entityType"`
	Buckets    []BucketAmount `json:"buckets"`
	Total      int64          `json:"total"`
}

// AgingTotals sums outstanding receivables and payables.
type AgingTotals struct {
	Debtors   int64 `json:"debtors"`
	Creditors int64 `json:"creditors"`
}

// AgingReport buckets open receivable/payable balances by age.
type AgingReport struct {
	Period    ReportPeriod `json:"period"`
	Shape     string       `json:"shape"` // three_bucket or four_bucket
	Debtors   []AgingRow   `json:"debtors"`
	Creditors []AgingRow   `json:"creditors"`
	Totals    AgingTotals  `json:"totals"`
}

// InventoryBalanceRow is one item's weighted-average costing result.
type InventoryBalanceRow struct {
	ItemID         string          `json:"itemID"`
	SKU            string          `json:"sku"`
	ItemName       string          `json:"itemName"`
	Unit           string          `json:"unit"`
	QtyIn          decimal.Decimal `json:"qtyIn"`
	QtyOut         decimal.Decimal `json:"qtyOut"`
	OnHandQty      decimal.Decimal `json:"onHandQty"`
	AverageCost    int64           `json:"averageCost"`
	InventoryValue int64           `json:"inventoryValue"`
	COGS           int64           `json:"cogs"`
}

// InventoryTotals aggregates the balance rows.
type InventoryTotals struct {
	InventoryValue int64           `json:"inventoryValue"`
	COGS           int64           `json:"cogs"`
	OnHandQty      decimal.Decimal `json:"onHandQty"`
}

// InventoryBalanceReport values stock as of a date.
type InventoryBalanceReport struct {
	Period ReportPeriod          `json:"period"`
	Rows   []InventoryBalanceRow `json:"rows"`
	Totals InventoryTotals       `json:"totals"`
}

// InventoryMovementRow is one movement for display.
type InventoryMovementRow struct {
	MovementID    string          `json:"movementID"`
	ItemID        string          `json:"itemID"`
	ItemName      string          `json:"itemName"`
	Date          time.Time       `json:"date"`
	Type          MovementType    `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      int64           `json:"unitCost"`
	MovementValue int64           `json:"movementValue"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
}

// InventoryMovementPage is a page of movements, newest first.
type InventoryMovementPage struct {
	Period   ReportPeriod           `json:"period"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
	Total    int                    `json:"total"`
	Rows     []InventoryMovementRow `json:"rows"`
}

// SalesByProductRow aggregates invoice items per product.
type SalesByProductRow struct {
	ProductName   string           `json:"productName"`
	Quantity      decimal.Decimal  `json:"quantity"`
	SalesAmount   int64            `json:"salesAmount"`
	EstimatedCost int64            `json:"estimatedCost"`
	Profit        int64            `json:"profit"`
	MarginPct     *decimal.Decimal `json:"marginPct"` // Nil when sales amount is zero
}

// SalesByInvoiceRow lists one invoice.
type SalesByInvoiceRow struct {
	InvoiceID     string     `json:"invoiceID"`
	InvoiceNumber string     `json:"invoiceNumber"`
	IssueDate     time.Time  `json:"issueDate"`
	DueDate       *time.Time `json:"dueDate"`
	Status        string     `json:"status"`
	EntityName    string     `json:"entityName"`
	Amount        int64      `json:"amount"`
}

// SalesTotals aggregates a sales or purchase report.
type SalesTotals struct {
	Amount        int64            `json:"amount"`
	EstimatedCost int64            `json:"estimatedCost"`
	Profit        int64            `json:"profit"`
	MarginPct     *decimal.Decimal `json:"marginPct"`
	Count         int              `json:"count"`
}

// SalesReport serves the by-product and by-invoice sales/purchase views,
// distinguished by ReportType.
type SalesReport struct {
	ReportType string              `json:"reportType"`
	Period     ReportPeriod        `json:"period"`
	Products   []SalesByProductRow `json:"products"`
	Invoices   []SalesByInvoiceRow `json:"invoices"`
	Totals     SalesTotals         `json:"totals"`
}
