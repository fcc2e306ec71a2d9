package domain

// AccountNature is the fundamental accounting class of an account, derived
// from its code prefix rather than stored authoritatively.
type AccountNature string

const (
	Asset     AccountNature = "ASSET"
	Liability AccountNature = "LIABILITY"
	Equity    AccountNature = "EQUITY"
	Revenue   AccountNature = "REVENUE"
	Expense   AccountNature = "EXPENSE"
	Other     AccountNature = "OTHER"
)

// DebitNatured reports whether balances of this nature grow on the debit
// side. OTHER accounts follow the debit convention.
func (n AccountNature) DebitNatured() bool {
	switch n {
	case Asset, Expense, Other:
		return true
	default:
		return false
	}
}

// Account is a node in the chart of accounts. Codes prefix-encode both the
// nature and the tree depth: 2-digit group, 4-digit general, 6+ digit
// sub/detail accounts. The parent references form a forest.
type Account struct {
	AccountID       string `json:"accountID"`       // Primary Key (e.g., UUID)
	Code            string `json:"code"`            // Unique chart code
	Name            string `json:"name"`            // User-defined name
	ParentAccountID string `json:"parentAccountID"` // Empty for root accounts
	AuditFields
}
