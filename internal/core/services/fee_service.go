package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/utils/fees"
	"github.com/daftarhq/daftar/pkg/config"
)

// feeService implements the FeeSvc interface.
type feeService struct {
	BaseService
	repo portsrepo.FeeRepository
	cfg  *config.Reporting
}

// FeeServiceOption is a functional option for configuring the fee service.
type FeeServiceOption func(*feeService)

// WithFeeConfig overrides the reporting configuration.
func WithFeeConfig(cfg *config.Reporting) FeeServiceOption {
	return func(s *feeService) {
		s.cfg = cfg
	}
}

// NewFeeService creates a new fee service with the provided options.
func NewFeeService(repo portsrepo.FeeRepository, options ...FeeServiceOption) portssvc.FeeSvc {
	svc := &feeService{
		repo: repo,
		cfg:  config.Default(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure feeService implements the FeeSvc interface
var _ portssvc.FeeSvc = (*feeService)(nil)

// ResolveRule picks the active rule version for a method+bank pair: latest
// effective-from on or before asOf, same-day versions broken by creation
// time.
func (s *feeService) ResolveRule(ctx context.Context, methodKey, bankName string, asOf time.Time) (*domain.FeeRule, error) {
	method, bank, err := s.lookupPair(ctx, methodKey, bankName)
	if err != nil {
		return nil, err
	}
	return s.pickRule(ctx, method.MethodID, bank.EntityID, asOf)
}

// Compute resolves the rule and runs the fee math in the given mode.
func (s *feeService) Compute(ctx context.Context, amount int64, methodKey, bankName string, mode domain.AmountMode, asOf time.Time) (*domain.FeeComputation, error) {
	rule, err := s.ResolveRule(ctx, methodKey, bankName, asOf)
	if err != nil {
		return nil, err
	}
	result := fees.CalculateTotalWithFee(amount, *rule, mode, s.cfg.GrossRefineWindow)
	s.LogDebug(ctx, "Fee computed",
		slog.String("methodKey", methodKey),
		slog.String("mode", string(mode)),
		slog.Int64("base", result.BaseAmount),
		slog.Int64("fee", result.FeeAmount))
	return &result, nil
}

// UpsertRule stores one rule version. Rules are keyed by (method, bank,
// effective-from): matching that key updates the version in place, a new
// key appends one.
func (s *feeService) UpsertRule(ctx context.Context, params portssvc.UpsertFeeRuleParams) (*domain.FeeRule, error) {
	method, bank, err := s.lookupPair(ctx, params.MethodKey, params.BankName)
	if err != nil {
		return nil, err
	}
	if err := validateRuleParams(params); err != nil {
		return nil, err
	}

	rules, err := s.repo.ListRules(ctx, method.MethodID, bank.EntityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee rules",
			slog.String("methodKey", params.MethodKey), slog.String("bankName", params.BankName))
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}

	now := time.Now().UTC()
	effective := params.EffectiveFrom
	if effective.IsZero() {
		effective = now.Truncate(24 * time.Hour)
	}

	rule := domain.FeeRule{
		RuleID:        uuid.NewString(),
		MethodID:      method.MethodID,
		BankID:        bank.EntityID,
		EffectiveFrom: effective,
		FeeType:       params.FeeType,
		FlatFee:       params.FlatFee,
		PercentBps:    params.PercentBps,
		MaxFee:        params.MaxFee,
		IsActive:      true,
	}
	rule.CreatedAt = now
	rule.LastUpdatedAt = now
	for _, existing := range rules {
		if existing.EffectiveFrom.Equal(effective) {
			rule.RuleID = existing.RuleID
			rule.CreatedAt = existing.CreatedAt
			break
		}
	}

	if err := s.repo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save fee rule", slog.String("ruleID", rule.RuleID))
		return nil, fmt.Errorf("failed to save fee rule: %w", err)
	}
	s.LogInfo(ctx, "Fee rule saved",
		slog.String("ruleID", rule.RuleID),
		slog.String("methodKey", params.MethodKey),
		slog.String("feeType", string(params.FeeType)),
		slog.String("effectiveFrom", effective.Format(time.DateOnly)))
	return &rule, nil
}

// RecalculatePending recomputes the PENDING fee snapshots of a method+bank
// that are anchored in the as-of month against the now active rule, then
// hands every changed snapshot to the repository in one atomic batch.
func (s *feeService) RecalculatePending(ctx context.Context, methodID, bankID string, asOf time.Time) (int, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	rule, err := s.pickRule(ctx, methodID, bankID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoFeeRule) {
			return 0, nil
		}
		return 0, err
	}

	apps, err := s.repo.ListPendingApplications(ctx, methodID, bankID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending fee applications",
			slog.String("methodID", methodID), slog.String("bankID", bankID))
		return 0, fmt.Errorf("failed to list pending fee applications: %w", err)
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	note := fmt.Sprintf("Recalculated on %s from updated fee rule (%s).",
		time.Now().UTC().Format(time.DateOnly), rule.FeeType)

	var updated []domain.FeeApplication
	for _, app := range apps {
		anchor := app.CreatedAt
		if app.TransactionDate != nil {
			anchor = *app.TransactionDate
		}
		if anchor.Before(monthStart) {
			continue
		}

		source := app.BaseAmount
		if app.AmountMode == domain.AmountModeGross {
			source = app.GrossAmount
			if source == 0 {
				source = app.BaseAmount + app.FeeAmount
			}
		}
		result := fees.CalculateTotalWithFee(source, *rule, app.AmountMode, s.cfg.GrossRefineWindow)
		if result.FeeAmount == app.FeeAmount && result.BaseAmount == app.BaseAmount && app.RuleID == rule.RuleID {
			continue
		}

		app.RuleID = rule.RuleID
		app.BaseAmount = result.BaseAmount
		app.FeeAmount = result.FeeAmount
		app.GrossAmount = result.GrossAmount
		app.NetAmount = result.NetAmount
		app.Note = note
		app.LastUpdatedAt = time.Now().UTC()
		updated = append(updated, app)
	}
	if len(updated) == 0 {
		return 0, nil
	}

	if err := s.repo.UpdateApplications(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update fee applications",
			slog.Int("count", len(updated)))
		return 0, fmt.Errorf("failed to update fee applications: %w", err)
	}
	s.LogInfo(ctx, "Pending fee applications recalculated",
		slog.String("methodID", methodID),
		slog.String("ruleID", rule.RuleID),
		slog.Int("updated", len(updated)))
	return len(updated), nil
}

func (s *feeService) lookupPair(ctx context.Context, methodKey, bankName string) (*domain.PaymentMethod, *domain.Entity, error) {
	method, err := s.repo.FindMethodByKey(ctx, methodKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up payment method", slog.String("methodKey", methodKey))
		return nil, nil, fmt.Errorf("failed to look up payment method: %w", err)
	}
	if method == nil {
		return nil, nil, fmt.Errorf("payment method %s: %w", methodKey, apperrors.ErrNotFound)
	}
	bank, err := s.repo.FindBankByName(ctx, bankName)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up bank", slog.String("bankName", bankName))
		return nil, nil, fmt.Errorf("failed to look up bank: %w", err)
	}
	if bank == nil {
		return nil, nil, fmt.Errorf("bank %s: %w", bankName, apperrors.ErrNotFound)
	}
	return method, bank, nil
}

func (s *feeService) pickRule(ctx context.Context, methodID, bankID string, asOf time.Time) (*domain.FeeRule, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	rules, err := s.repo.ListRules(ctx, methodID, bankID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee rules",
			slog.String("methodID", methodID), slog.String("bankID", bankID))
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}

	var picked *domain.FeeRule
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.EffectiveFrom.After(asOf) {
			continue
		}
		if picked == nil ||
			rule.EffectiveFrom.After(picked.EffectiveFrom) ||
			(rule.EffectiveFrom.Equal(picked.EffectiveFrom) && rule.CreatedAt.After(picked.CreatedAt)) {
			picked = rule
		}
	}
	if picked == nil {
		return nil, fmt.Errorf("method %s bank %s: %w", methodID, bankID, apperrors.ErrNoFeeRule)
	}
	return picked, nil
}

func validateRuleParams(params portssvc.UpsertFeeRuleParams) error {
	switch params.FeeType {
	case domain.FeeFree, domain.FeeFlat, domain.FeePercent, domain.FeeHybrid:
	default:
		return fmt.Errorf("fee type %q: %w", params.FeeType, apperrors.ErrValidation)
	}
	if params.FlatFee < 0 || params.PercentBps < 0 {
		return fmt.Errorf("fee components must be non-negative: %w", apperrors.ErrValidation)
	}
	if params.MaxFee != nil && *params.MaxFee < 0 {
		return fmt.Errorf("fee cap must be non-negative: %w", apperrors.ErrValidation)
	}
	return nil
}
