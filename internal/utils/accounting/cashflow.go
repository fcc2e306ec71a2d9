package accounting

import (
	"strings"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// CashFlowActivity is the cash flow statement section a transaction lands in.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "operating"
	ActivityInvesting CashFlowActivity = "investing"
	ActivityFinancing CashFlowActivity = "financing"
)

// ClassifyCashFlowActivity inspects a transaction's non-cash counterparty
// lines. Any code under the investing prefix wins outright; otherwise any
// code under the equity prefix, or any equity/liability-natured account,
// marks financing; everything else is operating. The check order matters: an
// investing signal always beats a competing financing signal.
func ClassifyCashFlowActivity(codes []string, natures []domain.AccountNature, investingPrefix, equityPrefix string) CashFlowActivity {
	for _, code := range codes {
		if strings.HasPrefix(code, investingPrefix) {
			return ActivityInvesting
		}
	}
	for _, code := range codes {
		if strings.HasPrefix(code, equityPrefix) {
			return ActivityFinancing
		}
	}
	for _, nature := range natures {
		if nature == domain.Equity || nature == domain.Liability {
			return ActivityFinancing
		}
	}
	return ActivityOperating
}
