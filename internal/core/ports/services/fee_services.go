package services

import (
	"context"
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
)

// UpsertFeeRuleParams describes one fee rule version. Rules are keyed by
// (method, bank, effective-from); upserting an existing key updates it in
// place, a new key appends a version.
type UpsertFeeRuleParams struct {
	MethodKey     string
	BankName      string
	FeeType       domain.FeeType
	FlatFee       int64
	PercentBps    int64
	MaxFee        *int64
	EffectiveFrom time.Time
}

// FeeSvc resolves fee rules and runs forward/inverse fee math.
type FeeSvc interface {
	// ResolveRule picks the active rule for a method+bank: latest
	// effective-from on or before asOf wins. Unknown method or bank yields
	// apperrors.ErrNotFound; no active rule yields apperrors.ErrNoFeeRule.
	ResolveRule(ctx context.Context, methodKey, bankName string, asOf time.Time) (*domain.FeeRule, error)
	// Compute resolves the rule and runs the fee math in the given mode.
	Compute(ctx context.Context, amount int64, methodKey, bankName string, mode domain.AmountMode, asOf time.Time) (*domain.FeeComputation, error)
	UpsertRule(ctx context.Context, params UpsertFeeRuleParams) (*domain.FeeRule, error)
	// RecalculatePending recomputes the PENDING fee applications of a
	// method+bank that are anchored in the as-of month against the now
	// active rule, handing all updated snapshots to the repository in one
	// atomic batch. Returns the number of snapshots updated.
	RecalculatePending(ctx context.Context, methodID, bankID string, asOf time.Time) (int, error)
}
