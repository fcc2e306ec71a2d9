package accounting

import (
	"sort"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// The deterministic traversal orders below are correctness requirements for
// the running folds, not performance concerns: date first, then creation
// time, then identity, so same-day postings always walk the same way.

// SortPostedLines orders ledger lines chronologically ascending.
func SortPostedLines(lines []domain.PostedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		if !lines[i].CreatedAt.Equal(lines[j].CreatedAt) {
			return lines[i].CreatedAt.Before(lines[j].CreatedAt)
		}
		return lines[i].LineID < lines[j].LineID
	})
}

// SortTransactionsAsc orders transactions chronologically ascending.
func SortTransactionsAsc(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.Before(txns[j].CreatedAt)
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})
}

// SortMovementsAsc orders inventory movements chronologically ascending, the
// order the costing fold requires.
func SortMovementsAsc(rows []domain.ItemMovement) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Movement, rows[j].Movement
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.MovementID < b.MovementID
	})
}

// SortEntityMovementsAsc orders aging input rows by date so settlements are
// applied after the balances they reduce. Same-day rows fall back to creation
// time, then movement ID, so the fold does not depend on reader order.
func SortEntityMovementsAsc(rows []domain.EntityMovement) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.MovementID < b.MovementID
	})
}
