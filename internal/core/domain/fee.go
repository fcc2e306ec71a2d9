package domain

import "time"

// FeeType selects the fee formula of a rule.
type FeeType string

const (
	FeeFree    FeeType = "FREE"
	FeeFlat    FeeType = "FLAT"
	FeePercent FeeType = "PERCENT"
	FeeHybrid  FeeType = "HYBRID"
)

// AmountMode states whether a supplied amount already includes the fee.
type AmountMode string

const (
	AmountModeNet   AmountMode = "net"   // Amount excludes the fee
	AmountModeGross AmountMode = "gross" // Amount includes the fee; base must be solved
)

// PaymentMethod is a way of moving money, e.g. card-to-card or an interbank
// transfer. Key is a stable slug of the display name.
type PaymentMethod struct {
	MethodID string `json:"methodID"` // Primary Key (e.g., UUID)
	Key      string `json:"key"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// FeeRule is one version of the fee charged for a (method, bank) pair,
// effective from a given date. The latest effective-from on or before the
// as-of date wins. MaxFee, when set, caps the computed fee.
type FeeRule struct {
	RuleID        string    `json:"ruleID"`
	MethodID      string    `json:"methodID"`
	BankID        string    `json:"bankID"` // Entity of type bank
	EffectiveFrom time.Time `json:"effectiveFrom"`
	FeeType       FeeType   `json:"feeType"`
	FlatFee       int64     `json:"flatFee"`    // Minor currency units
	PercentBps    int64     `json:"percentBps"` // Basis points; 100 bps = 1%
	MaxFee        *int64    `json:"maxFee"`     // Optional cap
	IsActive      bool      `json:"isActive"`
	AuditFields
}

// FeeApplicationStatus tracks whether a computed fee snapshot has been
// folded into a posted transaction.
type FeeApplicationStatus string

const (
	FeePending FeeApplicationStatus = "PENDING"
	FeeApplied FeeApplicationStatus = "APPLIED"
	FeeSkipped FeeApplicationStatus = "SKIPPED"
)

// FeeApplication is a snapshot of one computed fee, optionally tied to a
// transaction, kept so pending entries can be recalculated when the rule
// changes. TransactionDate, when known, anchors the snapshot in a period.
type FeeApplication struct {
	ApplicationID   string               `json:"applicationID"`
	TransactionID   string               `json:"transactionID"` // Empty when not yet posted
	TransactionDate *time.Time           `json:"transactionDate"`
	MethodID        string               `json:"methodID"`
	BankID          string               `json:"bankID"`
	RuleID          string               `json:"ruleID"`
	AmountMode      AmountMode           `json:"amountMode"`
	BaseAmount      int64                `json:"baseAmount"`
	FeeAmount       int64                `json:"feeAmount"`
	GrossAmount     int64                `json:"grossAmount"`
	NetAmount       int64                `json:"netAmount"`
	Status          FeeApplicationStatus `json:"status"`
	Note            string               `json:"note"`
	AuditFields
}

// FeeComputation is the result of forward or inverse fee math. In both modes
// BaseAmount + FeeAmount == GrossAmount holds exactly; in gross mode any
// rounding residual is absorbed into the fee to preserve it.
type FeeComputation struct {
	AmountMode  AmountMode `json:"amountMode"`
	InputAmount int64      `json:"inputAmount"`
	BaseAmount  int64      `json:"baseAmount"`
	FeeAmount   int64      `json:"feeAmount"`
	GrossAmount int64      `json:"grossAmount"`
	NetAmount   int64      `json:"netAmount"`
	CapApplied  bool       `json:"capApplied"`
}
