package domain

import "time"

// Transaction is a single, balanced financial event composed of at least two
// lines. All monetary amounts are integers in minor currency units.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (e.g., UUID)
	Date          time.Time         `json:"date"`          // Date the event occurred
	Reference     string            `json:"reference"`     // Nullable external reference
	Description   string            `json:"description"`   // Nullable user description
	Lines         []TransactionLine `json:"lines"`
	AuditFields
}

// TransactionLine is one leg of a transaction, affecting exactly one account.
// Well-formed lines have exactly one of Debit/Credit non-zero, but read-side
// aggregation must not assume it.
type TransactionLine struct {
	LineID        string `json:"lineID"`
	TransactionID string `json:"transactionID"`
	AccountID     string `json:"accountID"`
	AccountCode   string `json:"accountCode"` // Denormalised from the account for reporting
	AccountName   string `json:"accountName"`
	Debit         int64  `json:"debit"`  // Non-negative, minor currency units
	Credit        int64  `json:"credit"` // Non-negative, minor currency units
	Note          string `json:"note"`
}

// TotalDebit sums the debit side of all lines.
func (t Transaction) TotalDebit() int64 {
	var sum int64
	for _, ln := range t.Lines {
		sum += ln.Debit
	}
	return sum
}

// TotalCredit sums the credit side of all lines.
func (t Transaction) TotalCredit() int64 {
	var sum int64
	for _, ln := range t.Lines {
		sum += ln.Credit
	}
	return sum
}

// PostedLine is a transaction line joined with its transaction header, the
// shape ledger walks consume. CreatedAt carries the transaction's creation
// time for deterministic same-day ordering.
type PostedLine struct {
	Date          time.Time `json:"date"`
	TransactionID string    `json:"transactionID"`
	Reference     string    `json:"reference"`
	Description   string    `json:"description"`
	LineID        string    `json:"lineID"`
	AccountID     string    `json:"accountID"`
	AccountCode   string    `json:"accountCode"`
	Debit         int64     `json:"debit"`
	Credit        int64     `json:"credit"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}
