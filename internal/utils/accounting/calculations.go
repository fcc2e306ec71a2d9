package accounting

import (
	"fmt"
	"strings"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// NatureOf maps an account code to its accounting nature via fixed 2-digit
// prefix ranges. Unknown or malformed codes map to OTHER; it never errors.
func NatureOf(code string) domain.AccountNature {
	c := strings.TrimSpace(code)
	if len(c) < 2 {
		return domain.Other
	}
	switch c[:2] {
	case "11", "12", "13", "14", "15":
		return domain.Asset
	case "21", "22", "23", "24":
		return domain.Liability
	case "31", "32", "33":
		return domain.Equity
	case "41", "42", "43":
		return domain.Revenue
	case "51", "52", "53", "61", "62":
		return domain.Expense
	default:
		return domain.Other
	}
}

// BalanceFromTurnovers derives the nature-aware net balance:
// debit-natured accounts (assets/expenses/other) net debit - credit,
// credit-natured accounts (liability/equity/revenue) net credit - debit.
func BalanceFromTurnovers(nature domain.AccountNature, debit, credit int64) int64 {
	if nature.DebitNatured() {
		return debit - credit
	}
	return credit - debit
}

// SplitNet applies the trial-balance convention: the raw net sign alone
// decides the side, independent of account nature. A non-negative net shows
// entirely as a debit balance, a negative net entirely as a credit balance.
func SplitNet(debit, credit int64) (debitBalance, creditBalance int64) {
	net := debit - credit
	if net >= 0 {
		return net, 0
	}
	return 0, -net
}

// StatementValue clamps a balance for statement presentation: a contra entry
// that nets negative contributes nothing to its category.
func StatementValue(balance int64) int64 {
	if balance < 0 {
		return 0
	}
	return balance
}

// LineDelta is the per-line running-balance movement for an account of the
// given nature.
func LineDelta(nature domain.AccountNature, debit, credit int64) int64 {
	if nature.DebitNatured() {
		return debit - credit
	}
	return credit - debit
}

// ValidateBalanced checks a candidate line set at the write boundary: at
// least two lines, non-negative amounts, and equal debit/credit totals.
// Read-side aggregation never calls this; it must tolerate unbalanced data.
func ValidateBalanced(lines []domain.TransactionLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("transaction must have at least two lines, got %d", len(lines))
	}
	var totalDebit, totalCredit int64
	for _, ln := range lines {
		if ln.Debit < 0 || ln.Credit < 0 {
			return fmt.Errorf("negative amount on account %s", ln.AccountCode)
		}
		totalDebit += ln.Debit
		totalCredit += ln.Credit
	}
	if totalDebit != totalCredit {
		return fmt.Errorf("debit total %d does not equal credit total %d", totalDebit, totalCredit)
	}
	return nil
}
