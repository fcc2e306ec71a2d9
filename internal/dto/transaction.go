package dto

import (
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// CreateTransactionLineRequest is one candidate leg of a transaction.
// Amounts are integers in minor currency units; a well-formed line has
// exactly one of debit/credit non-zero.
type CreateTransactionLineRequest struct {
	AccountCode string `json:"accountCode" validate:"required"`
	Debit       int64  `json:"debit" validate:"gte=0"`
	Credit      int64  `json:"credit" validate:"gte=0"`
	Note        string `json:"note" validate:"max=512"`
}

// CreateTransactionRequest is a candidate transaction at the write boundary.
type CreateTransactionRequest struct {
	Date        time.Time                      `json:"date" validate:"required"`
	Reference   string                         `json:"reference" validate:"max=64"`
	Description string                         `json:"description" validate:"max=512"`
	Lines       []CreateTransactionLineRequest `json:"lines" validate:"required,min=2,dive"`
}

// ToDomainLines converts the request lines to domain lines for balance
// checking and posting.
func (r CreateTransactionRequest) ToDomainLines() []domain.TransactionLine {
	lines := make([]domain.TransactionLine, 0, len(r.Lines))
	for _, ln := range r.Lines {
		lines = append(lines, domain.TransactionLine{
			AccountCode: ln.AccountCode,
			Debit:       ln.Debit,
			Credit:      ln.Credit,
			Note:        ln.Note,
		})
	}
	return lines
}

// UpsertFeeRuleRequest configures one fee rule version for a payment method
// and bank pair.
type UpsertFeeRuleRequest struct {
	MethodKey     string    `json:"methodKey" validate:"required"`
	BankName      string    `json:"bankName" validate:"required"`
	FeeType       string    `json:"feeType" validate:"required,oneof=FREE FLAT PERCENT HYBRID"`
	FlatFee       int64     `json:"flatFee" validate:"gte=0"`
	PercentBps    int64     `json:"percentBps" validate:"gte=0,lte=10000"`
	MaxFee        *int64    `json:"maxFee" validate:"omitempty,gte=0"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
}

// ComputeFeeRequest asks for forward or inverse fee math on one amount.
type ComputeFeeRequest struct {
	Amount     int64  `json:"amount" validate:"gte=0"`
	MethodKey  string `json:"methodKey" validate:"required"`
	BankName   string `json:"bankName" validate:"required"`
	AmountMode string `json:"amountMode" validate:"required,oneof=net gross"`
}
