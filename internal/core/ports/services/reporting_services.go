// Package services declares the service interfaces the engine exposes to
// callers. All monetary fields in the returned reports are integers in minor
// currency units; quantities are fixed-precision decimals.
package services

import (
	"context"
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/daftarhq/daftar/internal/utils/accounting"
)

// StatementSvc builds the three financial statements.
type StatementSvc interface {
	// BalanceSheet is computed cumulatively from all history up to asOf.
	BalanceSheet(ctx context.Context, asOf time.Time, comparativeAsOf *time.Time) (*domain.BalanceSheetReport, error)
	// IncomeStatement covers an inclusive period.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)
	// CashFlow walks the period transaction by transaction.
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)
}

// LedgerSvc builds journal and ledger views.
type LedgerSvc interface {
	GeneralJournal(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.JournalPage, error)
	TrialBalance(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.TrialBalanceReport, error)
	GeneralLedger(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.TrialBalanceReport, error)
	// AccountLedger returns apperrors.ErrNotFound for an unknown code.
	AccountLedger(ctx context.Context, accountCode string, from, to time.Time, page, pageSize int) (*domain.AccountLedgerReport, error)
	// CashBankStatement is the account ledger specialised to one cash/bank
	// account; an empty code selects the configured default.
	CashBankStatement(ctx context.Context, accountCode string, from, to time.Time, page, pageSize int) (*domain.AccountLedgerReport, error)
	// BuildReversal constructs the swapped-legs reversal of a transaction.
	// Persisting it stays with the caller.
	BuildReversal(txn domain.Transaction, reverseDate time.Time, reference, description string) domain.Transaction
}

// OperationsSvc builds counterparty views: aging and running balances.
type OperationsSvc interface {
	// DebtorCreditor is the four-bucket aging of receivables and payables
	// over a period.
	DebtorCreditor(ctx context.Context, from, to time.Time) (*domain.AgingReport, error)
	// AgedBalances buckets all open balances up to asOf in the given shape.
	AgedBalances(ctx context.Context, asOf time.Time, shape accounting.AgingShape) (*domain.AgingReport, error)
	// PersonRunningBalance returns apperrors.ErrNotFound for an unknown
	// entity and apperrors.ErrValidation for a role outside
	// client/supplier/payee.
	PersonRunningBalance(ctx context.Context, entityID string, role domain.EntityRole, from, to time.Time) (*domain.PersonRunningBalanceReport, error)
}

// InventorySvc builds stock valuation and movement views.
type InventorySvc interface {
	BalanceReport(ctx context.Context, asOf time.Time) (*domain.InventoryBalanceReport, error)
	MovementReport(ctx context.Context, from, to time.Time, page, pageSize int, itemID string) (*domain.InventoryMovementPage, error)
}

// SalesSvc builds invoice-derived sales and purchase reports.
type SalesSvc interface {
	SalesByProduct(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
	PurchaseByProduct(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
	SalesByInvoice(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
	PurchaseByInvoice(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
}
