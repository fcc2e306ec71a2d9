package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/daftarhq/daftar/internal/adapters/memory"
	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/core/services"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// MockEntityReader is a mock implementation of the EntityReader port.
type MockEntityReader struct {
	mock.Mock
}

func (m *MockEntityReader) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityReader) FindEntitiesByIDs(ctx context.Context, entityIDs []string) (map[string]domain.Entity, error) {
	args := m.Called(ctx, entityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Entity), args.Error(1)
}

func (m *MockEntityReader) EntityMovements(ctx context.Context, from, to time.Time) ([]domain.EntityMovement, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityMovement), args.Error(1)
}

func (m *MockEntityReader) EntityLines(ctx context.Context, entityID string, role domain.EntityRole, from, to time.Time) ([]domain.PostedLine, error) {
	args := m.Called(ctx, entityID, role, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

type OperationsServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.OperationsSvc

	client   domain.Entity
	supplier domain.Entity
	from     time.Time
	to       time.Time
}

func (suite *OperationsServiceTestSuite) SetupTest() {
	cfg := config.Default()
	suite.store = memory.NewStore(cfg)
	suite.service = services.NewOperationsService(suite.store, services.WithOperationsConfig(cfg))

	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.store.AddAccount(domain.Account{AccountID: "ar", Code: "1112", Name: "Accounts Receivable"})
	suite.store.AddAccount(domain.Account{AccountID: "ap", Code: "2110", Name: "Accounts Payable"})
	suite.store.AddAccount(domain.Account{AccountID: "rev", Code: "4100", Name: "Sales"})
	suite.store.AddAccount(domain.Account{AccountID: "exp", Code: "5110", Name: "Purchases"})
	suite.store.AddAccount(domain.Account{AccountID: "cash", Code: "1110", Name: "Cash"})

	suite.client = suite.store.AddEntity(domain.Entity{EntityID: "c1", Name: "Acme Retail", Type: "client"})
	suite.supplier = suite.store.AddEntity(domain.Entity{EntityID: "s1", Name: "Globex Supply", Type: "supplier"})

	// Credit sale 70 days before period end.
	invoice := suite.store.AddTransaction(domain.Transaction{
		TransactionID: "sale",
		Date:          time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		Reference:     "INV-7",
		Lines: []domain.TransactionLine{
			{AccountID: "ar", Debit: 100_000},
			{AccountID: "rev", Credit: 100_000},
		},
	})
	suite.store.LinkEntity(invoice.TransactionID, suite.client.EntityID, domain.RoleClient)

	// Partial settlement 10 days before period end.
	payment := suite.store.AddTransaction(domain.Transaction{
		TransactionID: "payment",
		Date:          time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Lines: []domain.TransactionLine{
			{AccountID: "cash", Debit: 30_000},
			{AccountID: "ar", Credit: 30_000},
		},
	})
	suite.store.LinkEntity(payment.TransactionID, suite.client.EntityID, domain.RoleClient)

	// Supplier bill 5 days before period end.
	bill := suite.store.AddTransaction(domain.Transaction{
		TransactionID: "bill",
		Date:          time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		Lines: []domain.TransactionLine{
			{AccountID: "exp", Debit: 40_000},
			{AccountID: "ap", Credit: 40_000},
		},
	})
	suite.store.LinkEntity(bill.TransactionID, suite.supplier.EntityID, domain.RoleSupplier)
}

func (suite *OperationsServiceTestSuite) TestDebtorCreditor() {
	report, err := suite.service.DebtorCreditor(context.Background(), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("four_bucket", report.Shape)

	suite.Require().Len(report.Debtors, 1)
	debtor := report.Debtors[0]
	suite.Equal("Acme Retail", debtor.EntityName)
	suite.Equal("client", debtor.EntityType)
	suite.Equal(int64(70_000), debtor.Total)

	// The settlement drains the oldest buckets first: the 70-day-old sale
	// sits in 61-90 and the 30_000 payment reduces it there.
	suite.Require().Len(debtor.Buckets, 4)
	suite.Equal(int64(0), debtor.Buckets[0].Amount)
	suite.Equal(int64(0), debtor.Buckets[1].Amount)
	suite.Equal(int64(70_000), debtor.Buckets[2].Amount)
	suite.Equal(int64(0), debtor.Buckets[3].Amount)

	suite.Require().Len(report.Creditors, 1)
	creditor := report.Creditors[0]
	suite.Equal("Globex Supply", creditor.EntityName)
	suite.Equal(int64(40_000), creditor.Total)
	suite.Equal(int64(40_000), creditor.Buckets[0].Amount)

	suite.Equal(int64(70_000), report.Totals.Debtors)
	suite.Equal(int64(40_000), report.Totals.Creditors)
}

func (suite *OperationsServiceTestSuite) TestDebtorCreditorDropsSettledEntities() {
	// Settle the remainder; the client disappears from the report.
	settle := suite.store.AddTransaction(domain.Transaction{
		TransactionID: "settle",
		Date:          time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC),
		Lines: []domain.TransactionLine{
			{AccountID: "cash", Debit: 70_000},
			{AccountID: "ar", Credit: 70_000},
		},
	})
	suite.store.LinkEntity(settle.TransactionID, suite.client.EntityID, domain.RoleClient)

	report, err := suite.service.DebtorCreditor(context.Background(), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(report.Debtors)
	suite.Equal(int64(0), report.Totals.Debtors)
	suite.Len(report.Creditors, 1)
}

func (suite *OperationsServiceTestSuite) TestDebtorCreditorIgnoresReaderOrder() {
	// A same-day charge and settlement must fold in creation order no matter
	// how the reader returns them, or the oldest-first reduction clamps away
	// value it should have netted.
	old := domain.EntityMovement{
		MovementID: "t-old",
		Date:       suite.to.AddDate(0, 0, -70),
		Side:       domain.SideDebtor,
		EntityID:   "c1",
		EntityName: "Acme Retail",
		Delta:      100_000,
		CreatedAt:  time.Date(2025, 4, 21, 10, 0, 0, 0, time.UTC),
	}
	charge := domain.EntityMovement{
		MovementID: "t-charge",
		Date:       suite.to,
		Side:       domain.SideDebtor,
		EntityID:   "c1",
		EntityName: "Acme Retail",
		Delta:      50_000,
		CreatedAt:  time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC),
	}
	settle := domain.EntityMovement{
		MovementID: "t-settle",
		Date:       suite.to,
		Side:       domain.SideDebtor,
		EntityID:   "c1",
		EntityName: "Acme Retail",
		Delta:      -150_000,
		CreatedAt:  time.Date(2025, 6, 30, 16, 0, 0, 0, time.UTC),
	}

	for _, movements := range [][]domain.EntityMovement{
		{old, charge, settle},
		{old, settle, charge},
	} {
		reader := new(MockEntityReader)
		reader.On("EntityMovements", mock.Anything, mock.Anything, mock.Anything).
			Return(append([]domain.EntityMovement{}, movements...), nil)
		reader.On("FindEntitiesByIDs", mock.Anything, mock.Anything).
			Return(map[string]domain.Entity{}, nil)
		service := services.NewOperationsService(reader)

		report, err := service.DebtorCreditor(context.Background(), suite.from, suite.to)

		suite.Require().NoError(err)
		suite.Empty(report.Debtors)
		suite.Equal(int64(0), report.Totals.Debtors)
	}
}

func (suite *OperationsServiceTestSuite) TestAgedBalancesThreeBucket() {
	report, err := suite.service.AgedBalances(context.Background(), suite.to, accounting.ThreeBucket)

	suite.Require().NoError(err)
	suite.Equal("three_bucket", report.Shape)
	suite.Require().Len(report.Debtors, 1)
	suite.Require().Len(report.Debtors[0].Buckets, 3)
	// In the three-bucket shape the 70-day-old remainder lands in 60+.
	suite.Equal(int64(70_000), report.Debtors[0].Buckets[2].Amount)
}

func (suite *OperationsServiceTestSuite) TestPersonRunningBalanceClient() {
	report, err := suite.service.PersonRunningBalance(context.Background(), suite.client.EntityID, domain.RoleClient, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("Acme Retail", report.EntityName)
	suite.Require().Len(report.Rows, 2)

	suite.Equal(int64(100_000), report.Rows[0].DebitEffect)
	suite.Equal(int64(0), report.Rows[0].CreditEffect)
	suite.Equal(int64(100_000), report.Rows[0].RunningBalance)

	suite.Equal(int64(30_000), report.Rows[1].CreditEffect)
	suite.Equal(int64(70_000), report.Rows[1].RunningBalance)
	suite.Equal(int64(70_000), report.ClosingBalance)
}

func (suite *OperationsServiceTestSuite) TestPersonRunningBalanceSupplier() {
	report, err := suite.service.PersonRunningBalance(context.Background(), suite.supplier.EntityID, domain.RoleSupplier, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	// A growing payable reads positive in the running balance but shows in
	// the credit column.
	suite.Equal(int64(0), report.Rows[0].DebitEffect)
	suite.Equal(int64(40_000), report.Rows[0].CreditEffect)
	suite.Equal(int64(40_000), report.Rows[0].RunningBalance)
	suite.Equal(int64(40_000), report.ClosingBalance)
}

func (suite *OperationsServiceTestSuite) TestPersonRunningBalanceKeepsZeroDeltaRows() {
	// A self-cancelling receivable line still produces a row with both
	// effects zero and the balance unchanged.
	adjust := suite.store.AddTransaction(domain.Transaction{
		TransactionID: "adjust",
		Date:          time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC),
		Description:   "Contra adjustment",
		Lines: []domain.TransactionLine{
			{AccountID: "ar", Debit: 15_000, Credit: 15_000},
		},
	})
	suite.store.LinkEntity(adjust.TransactionID, suite.client.EntityID, domain.RoleClient)

	report, err := suite.service.PersonRunningBalance(context.Background(), suite.client.EntityID, domain.RoleClient, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	row := report.Rows[2]
	suite.Equal(int64(0), row.DebitEffect)
	suite.Equal(int64(0), row.CreditEffect)
	suite.Equal(int64(70_000), row.RunningBalance)
	suite.Equal(int64(70_000), report.ClosingBalance)
}

func (suite *OperationsServiceTestSuite) TestPersonRunningBalanceUnknownEntity() {
	_, err := suite.service.PersonRunningBalance(context.Background(), "missing", domain.RoleClient, suite.from, suite.to)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *OperationsServiceTestSuite) TestPersonRunningBalanceRejectsBankRole() {
	_, err := suite.service.PersonRunningBalance(context.Background(), suite.client.EntityID, domain.RoleBank, suite.from, suite.to)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func TestOperationsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OperationsServiceTestSuite))
}
