package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/daftarhq/daftar/internal/utils/accounting"
)

func TestRollUp(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "root", Code: "1100", Name: "Current Assets"},
		{AccountID: "cash", Code: "1110", Name: "Cash", ParentAccountID: "root"},
		{AccountID: "bank", Code: "1111", Name: "Bank", ParentAccountID: "root"},
		{AccountID: "petty", Code: "1115", Name: "Petty Cash", ParentAccountID: "cash"},
		{AccountID: "other", Code: "2100", Name: "Payables"},
	}
	own := map[string]int64{
		"cash":  500,
		"bank":  300,
		"petty": 50,
		"other": 1000,
	}

	totals := accounting.RollUp(accounts, own)

	assert.Equal(t, int64(850), totals["root"])
	assert.Equal(t, int64(550), totals["cash"])
	assert.Equal(t, int64(300), totals["bank"])
	assert.Equal(t, int64(50), totals["petty"])
	assert.Equal(t, int64(1000), totals["other"])
}

func TestRollUpEmptyOwnAmounts(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "root", Code: "1100"},
		{AccountID: "leaf", Code: "1110", ParentAccountID: "root"},
	}
	totals := accounting.RollUp(accounts, map[string]int64{})
	assert.Equal(t, int64(0), totals["root"])
	assert.Equal(t, int64(0), totals["leaf"])
}

func TestClassifyCashFlowActivity(t *testing.T) {
	cfgInvesting, cfgEquity := "12", "31"

	// Revenue counterparty lands in operating.
	assert.Equal(t, accounting.ActivityOperating, accounting.ClassifyCashFlowActivity(
		[]string{"4100"}, []domain.AccountNature{domain.Revenue}, cfgInvesting, cfgEquity))

	// An investing-prefix counterparty wins regardless of other signals.
	assert.Equal(t, accounting.ActivityInvesting, accounting.ClassifyCashFlowActivity(
		[]string{"1210", "3110"}, []domain.AccountNature{domain.Asset, domain.Equity}, cfgInvesting, cfgEquity))

	// An equity-prefix counterparty marks financing.
	assert.Equal(t, accounting.ActivityFinancing, accounting.ClassifyCashFlowActivity(
		[]string{"3110"}, []domain.AccountNature{domain.Equity}, cfgInvesting, cfgEquity))

	// A liability-natured counterparty without a prefix match is financing.
	assert.Equal(t, accounting.ActivityFinancing, accounting.ClassifyCashFlowActivity(
		[]string{"2110"}, []domain.AccountNature{domain.Liability}, cfgInvesting, cfgEquity))

	// No counterparty lines at all defaults to operating.
	assert.Equal(t, accounting.ActivityOperating, accounting.ClassifyCashFlowActivity(
		nil, nil, cfgInvesting, cfgEquity))
}
