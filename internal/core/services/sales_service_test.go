package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/daftarhq/daftar/internal/adapters/memory"
	"github.com/daftarhq/daftar/internal/core/domain"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/core/services"
	"github.com/daftarhq/daftar/pkg/config"
)

type SalesServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.SalesSvc

	from time.Time
	to   time.Time
}

func (suite *SalesServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore(config.Default())
	suite.service = services.NewSalesService(suite.store, suite.store)

	suite.from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	client := suite.store.AddEntity(domain.Entity{EntityID: "c1", Name: "Acme Retail", Type: "client"})

	suite.store.AddInvoice(domain.Invoice{
		InvoiceID: "i1", Number: "S-001", Kind: domain.InvoiceSales,
		EntityID: client.EntityID, IssueDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Status: "paid", Amount: 120_000,
	}, []domain.InvoiceItem{
		{ProductName: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: 10_000, UnitCost: 6_000, LineTotal: 100_000},
		{ProductName: "Gadget", Quantity: decimal.NewFromInt(2), UnitPrice: 10_000, UnitCost: 7_000, LineTotal: 20_000},
	})
	suite.store.AddInvoice(domain.Invoice{
		InvoiceID: "i2", Number: "S-002", Kind: domain.InvoiceSales,
		IssueDate: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:    "unpaid", Amount: 50_000,
	}, []domain.InvoiceItem{
		{ProductName: "Widget", Quantity: decimal.NewFromInt(5), UnitPrice: 10_000, UnitCost: 6_000, LineTotal: 50_000},
	})
	suite.store.AddInvoice(domain.Invoice{
		InvoiceID: "p1", Number: "P-001", Kind: domain.InvoicePurchase,
		IssueDate: time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		Status:    "paid", Amount: 90_000,
	}, []domain.InvoiceItem{
		{ProductName: "Widget", Quantity: decimal.NewFromInt(15), UnitPrice: 6_000, UnitCost: 6_000, LineTotal: 90_000},
	})
}

func (suite *SalesServiceTestSuite) TestSalesByProduct() {
	report, err := suite.service.SalesByProduct(context.Background(), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("sales_by_product", report.ReportType)
	suite.Require().Len(report.Products, 2)

	// Sorted by product name.
	gadget := report.Products[0]
	suite.Equal("Gadget", gadget.ProductName)
	suite.Equal(int64(20_000), gadget.SalesAmount)
	suite.Equal(int64(14_000), gadget.EstimatedCost)
	suite.Equal(int64(6_000), gadget.Profit)
	suite.Require().NotNil(gadget.MarginPct)
	suite.True(gadget.MarginPct.Equal(decimal.NewFromInt(30)))

	widget := report.Products[1]
	suite.Equal("Widget", widget.ProductName)
	suite.True(widget.Quantity.Equal(decimal.NewFromInt(15)))
	suite.Equal(int64(150_000), widget.SalesAmount)
	suite.Equal(int64(90_000), widget.EstimatedCost)

	suite.Equal(int64(170_000), report.Totals.Amount)
	suite.Equal(int64(104_000), report.Totals.EstimatedCost)
	suite.Equal(int64(66_000), report.Totals.Profit)
}

func (suite *SalesServiceTestSuite) TestSalesByProductZeroSalesMargin() {
	suite.store.AddInvoice(domain.Invoice{
		InvoiceID: "i3", Number: "S-003", Kind: domain.InvoiceSales,
		IssueDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	}, []domain.InvoiceItem{
		{ProductName: "Sample", Quantity: decimal.NewFromInt(1), UnitCost: 500, LineTotal: 0},
	})

	report, err := suite.service.SalesByProduct(context.Background(), suite.from, suite.to)

	suite.Require().NoError(err)
	for _, row := range report.Products {
		if row.ProductName == "Sample" {
			suite.Nil(row.MarginPct)
		}
	}
}

func (suite *SalesServiceTestSuite) TestSalesByInvoice() {
	report, err := suite.service.SalesByInvoice(context.Background(), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("sales_by_invoice", report.ReportType)
	suite.Require().Len(report.Invoices, 2)

	// Newest first.
	suite.Equal("S-002", report.Invoices[0].InvoiceNumber)
	suite.Equal("", report.Invoices[0].EntityName)
	suite.Equal("S-001", report.Invoices[1].InvoiceNumber)
	suite.Equal("Acme Retail", report.Invoices[1].EntityName)

	suite.Equal(int64(170_000), report.Totals.Amount)
	suite.Equal(2, report.Totals.Count)
}

func (suite *SalesServiceTestSuite) TestPurchaseReportsAreScoped() {
	byProduct, err := suite.service.PurchaseByProduct(context.Background(), suite.from, suite.to)
	suite.Require().NoError(err)
	suite.Equal("purchase_by_product", byProduct.ReportType)
	suite.Require().Len(byProduct.Products, 1)
	suite.Equal(int64(90_000), byProduct.Products[0].SalesAmount)

	byInvoice, err := suite.service.PurchaseByInvoice(context.Background(), suite.from, suite.to)
	suite.Require().NoError(err)
	suite.Require().Len(byInvoice.Invoices, 1)
	suite.Equal("P-001", byInvoice.Invoices[0].InvoiceNumber)
}

func TestSalesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
