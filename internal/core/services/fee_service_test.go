package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/daftarhq/daftar/internal/adapters/memory"
	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/core/services"
	"github.com/daftarhq/daftar/pkg/config"
)

type FeeServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.FeeSvc

	method domain.PaymentMethod
	bank   domain.Entity
	asOf   time.Time
}

func (suite *FeeServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore(config.Default())
	suite.service = services.NewFeeService(suite.store)
	suite.asOf = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.method = suite.store.AddPaymentMethod(domain.PaymentMethod{
		MethodID: "m1", Key: "card_to_card", Name: "Card to Card", IsActive: true,
	})
	suite.bank = suite.store.AddEntity(domain.Entity{EntityID: "b1", Name: "Acme Bank", Type: "bank"})
}

func (suite *FeeServiceTestSuite) upsertRule(feeType domain.FeeType, flat, bps int64, effectiveFrom time.Time) *domain.FeeRule {
	rule, err := suite.service.UpsertRule(context.Background(), portssvc.UpsertFeeRuleParams{
		MethodKey:     "card_to_card",
		BankName:      "Acme Bank",
		FeeType:       feeType,
		FlatFee:       flat,
		PercentBps:    bps,
		EffectiveFrom: effectiveFrom,
	})
	suite.Require().NoError(err)
	return rule
}

func (suite *FeeServiceTestSuite) TestResolveRulePicksLatestEffective() {
	older := suite.upsertRule(domain.FeeFlat, 2_000, 0, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := suite.upsertRule(domain.FeePercent, 0, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	future := suite.upsertRule(domain.FeeFlat, 9_000, 0, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	rule, err := suite.service.ResolveRule(context.Background(), "card_to_card", "Acme Bank", suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(newer.RuleID, rule.RuleID)
	suite.NotEqual(older.RuleID, rule.RuleID)
	suite.NotEqual(future.RuleID, rule.RuleID)
}

func (suite *FeeServiceTestSuite) TestResolveRuleUnknownMethod() {
	_, err := suite.service.ResolveRule(context.Background(), "carrier_pigeon", "Acme Bank", suite.asOf)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *FeeServiceTestSuite) TestResolveRuleNoneMapped() {
	_, err := suite.service.ResolveRule(context.Background(), "card_to_card", "Acme Bank", suite.asOf)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNoFeeRule))
}

func (suite *FeeServiceTestSuite) TestComputeNetMode() {
	suite.upsertRule(domain.FeePercent, 0, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	result, err := suite.service.Compute(context.Background(), 1_000_000, "card_to_card", "Acme Bank", domain.AmountModeNet, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(1_000_000), result.BaseAmount)
	suite.Equal(int64(10_000), result.FeeAmount)
	suite.Equal(int64(1_010_000), result.GrossAmount)
}

func (suite *FeeServiceTestSuite) TestComputeGrossMode() {
	suite.upsertRule(domain.FeePercent, 0, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	result, err := suite.service.Compute(context.Background(), 1_010_000, "card_to_card", "Acme Bank", domain.AmountModeGross, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(1_000_000), result.BaseAmount)
	suite.Equal(result.GrossAmount, result.BaseAmount+result.FeeAmount)
}

func (suite *FeeServiceTestSuite) TestUpsertRuleSameEffectiveFromUpdatesInPlace() {
	first := suite.upsertRule(domain.FeeFlat, 2_000, 0, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	second := suite.upsertRule(domain.FeeFlat, 3_000, 0, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	suite.Equal(first.RuleID, second.RuleID)

	rules, err := suite.store.ListRules(context.Background(), suite.method.MethodID, suite.bank.EntityID)
	suite.Require().NoError(err)
	suite.Require().Len(rules, 1)
	suite.Equal(int64(3_000), rules[0].FlatFee)
}

func (suite *FeeServiceTestSuite) TestUpsertRuleRejectsBadInput() {
	_, err := suite.service.UpsertRule(context.Background(), portssvc.UpsertFeeRuleParams{
		MethodKey: "card_to_card",
		BankName:  "Acme Bank",
		FeeType:   domain.FeeType("TIERED"),
	})
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.service.UpsertRule(context.Background(), portssvc.UpsertFeeRuleParams{
		MethodKey: "card_to_card",
		BankName:  "Acme Bank",
		FeeType:   domain.FeeFlat,
		FlatFee:   -5,
	})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *FeeServiceTestSuite) TestRecalculatePending() {
	suite.upsertRule(domain.FeePercent, 0, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	inMonth := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	current := suite.store.AddApplication(domain.FeeApplication{
		ApplicationID:   "a1",
		MethodID:        suite.method.MethodID,
		BankID:          suite.bank.EntityID,
		TransactionDate: &inMonth,
		AmountMode:      domain.AmountModeNet,
		BaseAmount:      1_000_000,
		FeeAmount:       2_000,
		Status:          domain.FeePending,
	})
	stale := suite.store.AddApplication(domain.FeeApplication{
		ApplicationID:   "a2",
		MethodID:        suite.method.MethodID,
		BankID:          suite.bank.EntityID,
		TransactionDate: &lastMonth,
		AmountMode:      domain.AmountModeNet,
		BaseAmount:      500_000,
		FeeAmount:       1_000,
		Status:          domain.FeePending,
	})
	applied := suite.store.AddApplication(domain.FeeApplication{
		ApplicationID:   "a3",
		MethodID:        suite.method.MethodID,
		BankID:          suite.bank.EntityID,
		TransactionDate: &inMonth,
		AmountMode:      domain.AmountModeNet,
		BaseAmount:      1_000_000,
		FeeAmount:       2_000,
		Status:          domain.FeeApplied,
	})

	count, err := suite.service.RecalculatePending(context.Background(), suite.method.MethodID, suite.bank.EntityID, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(1, count)

	apps, err := suite.store.ListPendingApplications(context.Background(), suite.method.MethodID, suite.bank.EntityID)
	suite.Require().NoError(err)
	for _, app := range apps {
		switch app.ApplicationID {
		case current.ApplicationID:
			suite.Equal(int64(10_000), app.FeeAmount)
			suite.Equal(int64(1_010_000), app.GrossAmount)
			suite.Contains(app.Note, "Recalculated on")
		case stale.ApplicationID:
			suite.Equal(int64(1_000), app.FeeAmount)
		case applied.ApplicationID:
			suite.Fail("applied snapshot must not be listed as pending")
		}
	}
}

func (suite *FeeServiceTestSuite) TestRecalculatePendingWithoutRule() {
	count, err := suite.service.RecalculatePending(context.Background(), suite.method.MethodID, suite.bank.EntityID, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func TestFeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeServiceTestSuite))
}
