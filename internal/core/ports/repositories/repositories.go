// Package repositories declares the read-side ports the report builders
// consume. The excluded persistence layer implements them; the engine only
// sees already-fetched rows. Context is included for cancellation at the
// fetch boundary.
package repositories

import (
	"context"
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountReader
	TransactionRepo TransactionReader
	EntityRepo      EntityReader
	InventoryRepo   InventoryReader
	InvoiceRepo     InvoiceReader
	FeeRepo         FeeRepository
}

// AccountReader provides the chart of accounts.
type AccountReader interface {
	// ListAccounts returns every account, ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// FindAccountByCode looks an account up by its code. A missing code
	// yields (nil, nil); mapping to a not-found error is the caller's job.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
}

// TransactionReader provides transactions, lines, and turnovers filtered by
// date and account.
type TransactionReader interface {
	// TurnoversBetween aggregates debit/credit per account over an
	// inclusive date range.
	TurnoversBetween(ctx context.Context, from, to time.Time) ([]domain.AccountTurnover, error)
	// TurnoversUpTo aggregates per account over all history up to and
	// including asOf, for point-in-time views.
	TurnoversUpTo(ctx context.Context, asOf time.Time) ([]domain.AccountTurnover, error)
	// TurnoverForAccountBefore sums one account's activity strictly before
	// the given date, for opening balances.
	TurnoverForAccountBefore(ctx context.Context, accountID string, before time.Time) (debit, credit int64, err error)
	// ListTransactionsBetween returns transactions with their lines,
	// chronologically ascending (date, creation time, id).
	ListTransactionsBetween(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
	// JournalPage returns one page of transactions, newest first, plus the
	// total count in the range.
	JournalPage(ctx context.Context, from, to time.Time, page, pageSize int) (int, []domain.Transaction, error)
	// AccountLines returns every posted line of one account in the range,
	// chronologically ascending. The running-balance fold needs the whole
	// window; paging is applied after the fold.
	AccountLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.PostedLine, error)
}

// EntityReader provides counterparties and their receivable/payable
// activity.
type EntityReader interface {
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
	FindEntitiesByIDs(ctx context.Context, entityIDs []string) (map[string]domain.Entity, error)
	// EntityMovements returns per-day receivable/payable deltas for linked
	// entities over the range, the aging engine's input.
	EntityMovements(ctx context.Context, from, to time.Time) ([]domain.EntityMovement, error)
	// EntityLines returns the posted lines of transactions linked to the
	// entity in the given role, chronologically ascending.
	EntityLines(ctx context.Context, entityID string, role domain.EntityRole, from, to time.Time) ([]domain.PostedLine, error)
}

// InventoryReader provides items and stock movements.
type InventoryReader interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	// MovementsUpTo returns all movements up to and including asOf joined
	// with their items, chronologically ascending, which is the order
	// costing requires.
	MovementsUpTo(ctx context.Context, asOf time.Time) ([]domain.ItemMovement, error)
	// MovementsPage returns one page of movements in the range, newest
	// first, optionally restricted to one item.
	MovementsPage(ctx context.Context, from, to time.Time, page, pageSize int, itemID string) (int, []domain.ItemMovement, error)
}

// InvoiceReader provides sales/purchase invoices and their items.
type InvoiceReader interface {
	InvoicesBetween(ctx context.Context, from, to time.Time, kind domain.InvoiceKind) ([]domain.Invoice, error)
	InvoiceItemsBetween(ctx context.Context, from, to time.Time, kind domain.InvoiceKind) ([]domain.InvoiceItemRow, error)
}

// FeeRepository provides payment methods, banks, fee rules, and fee
// application snapshots. SaveRule and UpdateApplications are the only write
// ports in the engine; UpdateApplications must be applied atomically with
// respect to the surrounding write transaction.
type FeeRepository interface {
	FindMethodByKey(ctx context.Context, key string) (*domain.PaymentMethod, error)
	FindBankByName(ctx context.Context, name string) (*domain.Entity, error)
	// ListRules returns every rule version for a method+bank pair.
	ListRules(ctx context.Context, methodID, bankID string) ([]domain.FeeRule, error)
	SaveRule(ctx context.Context, rule domain.FeeRule) error
	ListPendingApplications(ctx context.Context, methodID, bankID string) ([]domain.FeeApplication, error)
	UpdateApplications(ctx context.Context, apps []domain.FeeApplication) error
}
