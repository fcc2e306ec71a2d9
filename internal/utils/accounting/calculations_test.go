package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/daftarhq/daftar/internal/utils/accounting"
)

func TestNatureOf(t *testing.T) {
	testCases := []struct {
		code     string
		expected domain.AccountNature
	}{
		{"1110", domain.Asset},
		{"1570", domain.Asset},
		{"2110", domain.Liability},
		{"2430", domain.Liability},
		{"3100", domain.Equity},
		{"3310", domain.Equity},
		{"4100", domain.Revenue},
		{"4320", domain.Revenue},
		{"5110", domain.Expense},
		{"5300", domain.Expense},
		{"6110", domain.Expense},
		{"6210", domain.Expense},
		{"7100", domain.Other},
		{"9999", domain.Other},
		{"16xx", domain.Other},
		{"1", domain.Other},
		{"", domain.Other},
		{"  1110  ", domain.Asset},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, accounting.NatureOf(tc.code), "code %q", tc.code)
	}
}

func TestBalanceFromTurnovers(t *testing.T) {
	// Debit-natured accounts net debit minus credit.
	assert.Equal(t, int64(300), accounting.BalanceFromTurnovers(domain.Asset, 500, 200))
	assert.Equal(t, int64(-100), accounting.BalanceFromTurnovers(domain.Expense, 100, 200))
	assert.Equal(t, int64(50), accounting.BalanceFromTurnovers(domain.Other, 50, 0))

	// Credit-natured accounts net credit minus debit.
	assert.Equal(t, int64(300), accounting.BalanceFromTurnovers(domain.Liability, 200, 500))
	assert.Equal(t, int64(1000), accounting.BalanceFromTurnovers(domain.Revenue, 0, 1000))
	assert.Equal(t, int64(-70), accounting.BalanceFromTurnovers(domain.Equity, 100, 30))
}

func TestSplitNet(t *testing.T) {
	debit, credit := accounting.SplitNet(500000, 200000)
	assert.Equal(t, int64(300000), debit)
	assert.Equal(t, int64(0), credit)

	debit, credit = accounting.SplitNet(100, 400)
	assert.Equal(t, int64(0), debit)
	assert.Equal(t, int64(300), credit)

	// A zero net shows on the debit side with a zero amount.
	debit, credit = accounting.SplitNet(250, 250)
	assert.Equal(t, int64(0), debit)
	assert.Equal(t, int64(0), credit)
}

func TestStatementValue(t *testing.T) {
	assert.Equal(t, int64(100), accounting.StatementValue(100))
	assert.Equal(t, int64(0), accounting.StatementValue(0))
	assert.Equal(t, int64(0), accounting.StatementValue(-50))
}

func TestValidateBalanced(t *testing.T) {
	balanced := []domain.TransactionLine{
		{AccountCode: "1110", Debit: 1000},
		{AccountCode: "4100", Credit: 1000},
	}
	assert.NoError(t, accounting.ValidateBalanced(balanced))

	unbalanced := []domain.TransactionLine{
		{AccountCode: "1110", Debit: 1000},
		{AccountCode: "4100", Credit: 900},
	}
	assert.Error(t, accounting.ValidateBalanced(unbalanced))

	single := []domain.TransactionLine{{AccountCode: "1110", Debit: 1000}}
	assert.Error(t, accounting.ValidateBalanced(single))

	negative := []domain.TransactionLine{
		{AccountCode: "1110", Debit: -100},
		{AccountCode: "4100", Credit: -100},
	}
	assert.Error(t, accounting.ValidateBalanced(negative))
}

func TestLineDelta(t *testing.T) {
	assert.Equal(t, int64(500), accounting.LineDelta(domain.Asset, 500, 0))
	assert.Equal(t, int64(-200), accounting.LineDelta(domain.Asset, 0, 200))
	assert.Equal(t, int64(500), accounting.LineDelta(domain.Liability, 0, 500))
	assert.Equal(t, int64(-200), accounting.LineDelta(domain.Revenue, 200, 0))
}
