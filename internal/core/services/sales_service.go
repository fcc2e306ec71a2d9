package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
)

// salesService implements the SalesSvc interface.
type salesService struct {
	BaseService
	invoices portsrepo.InvoiceReader
	entities portsrepo.EntityReader
}

// NewSalesService creates a new sales service.
func NewSalesService(invoices portsrepo.InvoiceReader, entities portsrepo.EntityReader) portssvc.SalesSvc {
	return &salesService{invoices: invoices, entities: entities}
}

// Ensure salesService implements the SalesSvc interface
var _ portssvc.SalesSvc = (*salesService)(nil)

// SalesByProduct aggregates sales invoice items per product.
func (s *salesService) SalesByProduct(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	return s.byProduct(ctx, "sales_by_product", domain.InvoiceSales, from, to)
}

// PurchaseByProduct aggregates purchase invoice items per product.
func (s *salesService) PurchaseByProduct(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	return s.byProduct(ctx, "purchase_by_product", domain.InvoicePurchase, from, to)
}

// SalesByInvoice lists sales invoices in the period.
func (s *salesService) SalesByInvoice(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	return s.byInvoice(ctx, "sales_by_invoice", domain.InvoiceSales, from, to)
}

// PurchaseByInvoice lists purchase invoices in the period.
func (s *salesService) PurchaseByInvoice(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	return s.byInvoice(ctx, "purchase_by_invoice", domain.InvoicePurchase, from, to)
}

func (s *salesService) byProduct(ctx context.Context, reportType string, kind domain.InvoiceKind, from, to time.Time) (*domain.SalesReport, error) {
	period := defaultPeriod(from, to)

	items, err := s.invoices.InvoiceItemsBetween(ctx, period.From, period.To, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve invoice items",
			slog.String("reportType", reportType))
		return nil, fmt.Errorf("failed to retrieve invoice items: %w", err)
	}

	type agg struct {
		qty   decimal.Decimal
		sales int64
		cost  int64
	}
	byProduct := make(map[string]*agg)
	var order []string
	for _, row := range items {
		name := row.Item.ProductName
		a, ok := byProduct[name]
		if !ok {
			a = &agg{qty: decimal.Zero}
			byProduct[name] = a
			order = append(order, name)
		}
		a.qty = a.qty.Add(row.Item.Quantity)
		a.sales += row.Item.LineTotal
		a.cost += row.Item.Quantity.Mul(decimal.NewFromInt(row.Item.UnitCost)).Round(0).IntPart()
	}
	sort.Slice(order, func(i, j int) bool {
		return strings.ToLower(order[i]) < strings.ToLower(order[j])
	})

	var totals domain.SalesTotals
	rows := make([]domain.SalesByProductRow, 0, len(order))
	for _, name := range order {
		a := byProduct[name]
		profit := a.sales - a.cost
		rows = append(rows, domain.SalesByProductRow{
			ProductName:   name,
			Quantity:      a.qty,
			SalesAmount:   a.sales,
			EstimatedCost: a.cost,
			Profit:        profit,
			MarginPct:     marginPct(profit, a.sales),
		})
		totals.Amount += a.sales
		totals.EstimatedCost += a.cost
	}
	totals.Profit = totals.Amount - totals.EstimatedCost
	totals.MarginPct = marginPct(totals.Profit, totals.Amount)
	totals.Count = len(rows)

	s.LogInfo(ctx, "Product report generated",
		slog.String("reportType", reportType),
		slog.Int("products", len(rows)),
		slog.Int64("amount", totals.Amount))
	return &domain.SalesReport{
		ReportType: reportType,
		Period:     period,
		Products:   rows,
		Totals:     totals,
	}, nil
}

func (s *salesService) byInvoice(ctx context.Context, reportType string, kind domain.InvoiceKind, from, to time.Time) (*domain.SalesReport, error) {
	period := defaultPeriod(from, to)

	invoices, err := s.invoices.InvoicesBetween(ctx, period.From, period.To, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve invoices",
			slog.String("reportType", reportType))
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].IssueDate.Equal(invoices[j].IssueDate) {
			return invoices[i].IssueDate.After(invoices[j].IssueDate)
		}
		return invoices[i].InvoiceID < invoices[j].InvoiceID
	})

	var entityIDs []string
	seen := make(map[string]bool)
	for _, inv := range invoices {
		if inv.EntityID != "" && !seen[inv.EntityID] {
			seen[inv.EntityID] = true
			entityIDs = append(entityIDs, inv.EntityID)
		}
	}
	entityByID, err := s.entities.FindEntitiesByIDs(ctx, entityIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve invoice entities",
			slog.String("reportType", reportType))
		return nil, fmt.Errorf("failed to resolve invoice entities: %w", err)
	}

	var totals domain.SalesTotals
	rows := make([]domain.SalesByInvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		row := domain.SalesByInvoiceRow{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.Number,
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
			Status:        inv.Status,
			Amount:        inv.Amount,
		}
		if ent, ok := entityByID[inv.EntityID]; ok {
			row.EntityName = ent.Name
		}
		rows = append(rows, row)
		totals.Amount += inv.Amount
	}
	totals.Count = len(rows)

	s.LogInfo(ctx, "Invoice report generated",
		slog.String("reportType", reportType),
		slog.Int("invoices", len(rows)),
		slog.Int64("amount", totals.Amount))
	return &domain.SalesReport{
		ReportType: reportType,
		Period:     period,
		Invoices:   rows,
		Totals:     totals,
	}, nil
}

// marginPct is profit over sales as a percentage rounded to two places, nil
// when the sales amount is zero.
func marginPct(profit, sales int64) *decimal.Decimal {
	if sales == 0 {
		return nil
	}
	pct := decimal.NewFromInt(profit).
		Div(decimal.NewFromInt(sales)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return &pct
}
