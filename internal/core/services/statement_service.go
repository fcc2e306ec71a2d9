package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// statementService implements the StatementSvc interface.
type statementService struct {
	BaseService
	accounts portsrepo.AccountReader
	txns     portsrepo.TransactionReader
	cfg      *config.Reporting
}

// StatementServiceOption is a functional option for configuring the
// statement service.
type StatementServiceOption func(*statementService)

// WithStatementConfig overrides the reporting configuration.
func WithStatementConfig(cfg *config.Reporting) StatementServiceOption {
	return func(s *statementService) {
		s.cfg = cfg
	}
}

// NewStatementService creates a new statement service with the provided options.
func NewStatementService(accounts portsrepo.AccountReader, txns portsrepo.TransactionReader, options ...StatementServiceOption) portssvc.StatementSvc {
	svc := &statementService{
		accounts: accounts,
		txns:     txns,
		cfg:      config.Default(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure statementService implements the StatementSvc interface
var _ portssvc.StatementSvc = (*statementService)(nil)

// BalanceSheet computes cumulative nature-aware balances up to asOf, rolls
// them up the account forest, and partitions the roots into sections.
func (s *statementService) BalanceSheet(ctx context.Context, asOf time.Time, comparativeAsOf *time.Time) (*domain.BalanceSheetReport, error) {
	period := defaultPeriod(time.Time{}, asOf)

	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for balance sheet")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	turnovers, err := s.txns.TurnoversUpTo(ctx, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve turnovers for balance sheet",
			slog.String("asOf", period.To.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve turnovers: %w", err)
	}

	byAccount := make(map[string]domain.AccountTurnover, len(turnovers))
	for _, t := range turnovers {
		byAccount[t.AccountID] = t
	}

	own := make(map[string]int64, len(accounts))
	for _, acc := range accounts {
		t := byAccount[acc.AccountID]
		nature := accounting.NatureOf(acc.Code)
		own[acc.AccountID] = accounting.StatementValue(accounting.BalanceFromTurnovers(nature, t.Debit, t.Credit))
	}
	rolled := accounting.RollUp(accounts, own)

	assets := buildSectionTree(accounts, rolled, domain.Asset)
	liabilities := buildSectionTree(accounts, rolled, domain.Liability)
	equity := buildSectionTree(accounts, rolled, domain.Equity)

	report := &domain.BalanceSheetReport{
		Period:      period,
		Assets:      domain.StatementSection{Key: "assets", Label: "Assets", Items: assets, Total: sumRootNodes(assets)},
		Liabilities: domain.StatementSection{Key: "liabilities", Label: "Liabilities", Items: liabilities, Total: sumRootNodes(liabilities)},
		Equity:      domain.StatementSection{Key: "equity", Label: "Equity", Items: equity, Total: sumRootNodes(equity)},
	}
	report.Totals = domain.BalanceSheetTotals{
		Assets:      report.Assets.Total,
		Liabilities: report.Liabilities.Total,
		Equity:      report.Equity.Total,
	}
	if comparativeAsOf != nil {
		cp := defaultPeriod(time.Time{}, *comparativeAsOf)
		report.ComparativePeriod = &cp
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("asOf", period.To.Format(time.RFC3339)),
		slog.Int("asset_roots", len(assets)),
		slog.Int("liability_roots", len(liabilities)),
		slog.Int("equity_roots", len(equity)))
	return report, nil
}

// IncomeStatement aggregates nature-aware period balances, clamped at zero,
// into revenue, COGS, operating and other expense categories.
func (s *statementService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	period := defaultPeriod(from, to)

	turnovers, err := s.txns.TurnoversBetween(ctx, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve turnovers for income statement",
			slog.String("from", period.From.Format(time.RFC3339)),
			slog.String("to", period.To.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve turnovers: %w", err)
	}

	var revenue, cogs, opex, otherExp []domain.IncomeStatementRow
	for _, t := range turnovers {
		nature := accounting.NatureOf(t.AccountCode)
		amount := accounting.StatementValue(accounting.BalanceFromTurnovers(nature, t.Debit, t.Credit))
		if amount == 0 {
			continue
		}
		row := domain.IncomeStatementRow{
			AccountID:      t.AccountID,
			AccountCode:    t.AccountCode,
			AccountName:    t.AccountName,
			Nature:         nature,
			Amount:         amount,
			DebitTurnover:  t.Debit,
			CreditTurnover: t.Credit,
		}
		switch {
		case nature == domain.Revenue:
			revenue = append(revenue, row)
		case strings.HasPrefix(t.AccountCode, s.cfg.COGSPrefix):
			cogs = append(cogs, row)
		case strings.HasPrefix(t.AccountCode, s.cfg.OpexPrefix):
			opex = append(opex, row)
		case strings.HasPrefix(t.AccountCode, s.cfg.OtherExpensePrefix) || nature == domain.Expense:
			otherExp = append(otherExp, row)
		}
	}
	for _, rows := range [][]domain.IncomeStatementRow{revenue, cogs, opex, otherExp} {
		sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	}

	totals := domain.IncomeStatementTotals{
		Revenue:           sumIncomeRows(revenue),
		COGS:              sumIncomeRows(cogs),
		OperatingExpenses: sumIncomeRows(opex),
		OtherExpenses:     sumIncomeRows(otherExp),
	}
	totals.GrossProfit = totals.Revenue - totals.COGS
	totals.NetProfit = totals.GrossProfit - totals.OperatingExpenses - totals.OtherExpenses

	s.LogInfo(ctx, "Income statement generated",
		slog.String("from", period.From.Format(time.RFC3339)),
		slog.String("to", period.To.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(cogs)+len(opex)+len(otherExp)))
	return &domain.IncomeStatementReport{
		Period:            period,
		Revenue:           domain.IncomeSection{Key: "revenues", Label: "Revenues", Items: revenue, Total: totals.Revenue},
		COGS:              domain.IncomeSection{Key: "cogs", Label: "Cost of Goods Sold", Items: cogs, Total: totals.COGS},
		OperatingExpenses: domain.IncomeSection{Key: "operating_expenses", Label: "Operating Expenses", Items: opex, Total: totals.OperatingExpenses},
		OtherExpenses:     domain.IncomeSection{Key: "other_expenses", Label: "Other Expenses", Items: otherExp, Total: totals.OtherExpenses},
		Totals:            totals,
	}, nil
}

// CashFlow walks the period transaction by transaction: each transaction's
// cash delta is classified by its counterparty lines and accumulated into a
// section with one disclosure line per contributing transaction.
func (s *statementService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	period := defaultPeriod(from, to)

	txns, err := s.txns.ListTransactionsBetween(ctx, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for cash flow",
			slog.String("from", period.From.Format(time.RFC3339)),
			slog.String("to", period.To.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	accounting.SortTransactionsAsc(txns)

	sections := map[accounting.CashFlowActivity]*domain.CashFlowSection{
		accounting.ActivityOperating: {Key: "operating", Label: "Operating Activities"},
		accounting.ActivityInvesting: {Key: "investing", Label: "Investing Activities"},
		accounting.ActivityFinancing: {Key: "financing", Label: "Financing Activities"},
	}

	for _, txn := range txns {
		var cashDelta int64
		var counterCodes []string
		var counterNatures []domain.AccountNature
		for _, ln := range txn.Lines {
			if strings.HasPrefix(ln.AccountCode, s.cfg.CashAccountPrefix) {
				cashDelta += ln.Debit - ln.Credit
			} else {
				counterCodes = append(counterCodes, ln.AccountCode)
				counterNatures = append(counterNatures, accounting.NatureOf(ln.AccountCode))
			}
		}
		if cashDelta == 0 {
			continue
		}
		activity := accounting.ClassifyCashFlowActivity(counterCodes, counterNatures, s.cfg.InvestingPrefix, s.cfg.EquityPrefix)

		label := txn.Description
		if label == "" {
			label = txn.Reference
		}
		if label == "" {
			label = "Transaction " + txn.TransactionID
		}
		code := s.cfg.CashAccountPrefix
		if len(counterCodes) > 0 {
			code = counterCodes[0]
		}
		section := sections[activity]
		section.Net += cashDelta
		section.Lines = append(section.Lines, domain.CashFlowLine{
			AccountCode: code,
			Label:       truncateLabel(label, 128),
			Amount:      cashDelta,
		})
	}

	report := &domain.CashFlowReport{
		Period:    period,
		Operating: *sections[accounting.ActivityOperating],
		Investing: *sections[accounting.ActivityInvesting],
		Financing: *sections[accounting.ActivityFinancing],
	}
	report.NetCashChange = report.Operating.Net + report.Investing.Net + report.Financing.Net

	s.LogInfo(ctx, "Cash flow statement generated",
		slog.String("from", period.From.Format(time.RFC3339)),
		slog.String("to", period.To.Format(time.RFC3339)),
		slog.Int64("net_cash_change", report.NetCashChange))
	return report, nil
}

// buildSectionTree keeps an account when its own nature matches the section
// or it has at least one qualifying descendant, so intermediate group
// accounts of mixed content are still shown.
func buildSectionTree(accounts []domain.Account, totals map[string]int64, section domain.AccountNature) []domain.StatementNode {
	children := accounting.ChildIndex(accounts)
	for _, arr := range children {
		sort.Slice(arr, func(i, j int) bool { return arr[i].Code < arr[j].Code })
	}

	var build func(acc domain.Account) *domain.StatementNode
	build = func(acc domain.Account) *domain.StatementNode {
		nature := accounting.NatureOf(acc.Code)
		var childNodes []domain.StatementNode
		for _, ch := range children[acc.AccountID] {
			if n := build(ch); n != nil {
				childNodes = append(childNodes, *n)
			}
		}
		if nature != section && len(childNodes) == 0 {
			return nil
		}
		return &domain.StatementNode{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Nature:      nature,
			Balance:     totals[acc.AccountID],
			Children:    childNodes,
		}
	}

	var out []domain.StatementNode
	for _, root := range children[""] {
		if n := build(root); n != nil {
			out = append(out, *n)
		}
	}
	return out
}

// sumRootNodes totals root-level nodes only; children are already folded
// into their parents, so summing roots avoids double counting.
func sumRootNodes(items []domain.StatementNode) int64 {
	var total int64
	for _, n := range items {
		total += n.Balance
	}
	return total
}

func sumIncomeRows(rows []domain.IncomeStatementRow) int64 {
	var total int64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}
