package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// ledgerService implements the LedgerSvc interface.
type ledgerService struct {
	BaseService
	accounts portsrepo.AccountReader
	txns     portsrepo.TransactionReader
	cfg      *config.Reporting
}

// LedgerServiceOption is a functional option for configuring the ledger
// service.
type LedgerServiceOption func(*ledgerService)

// WithLedgerConfig overrides the reporting configuration.
func WithLedgerConfig(cfg *config.Reporting) LedgerServiceOption {
	return func(s *ledgerService) {
		s.cfg = cfg
	}
}

// NewLedgerService creates a new ledger service with the provided options.
func NewLedgerService(accounts portsrepo.AccountReader, txns portsrepo.TransactionReader, options ...LedgerServiceOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		accounts: accounts,
		txns:     txns,
		cfg:      config.Default(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvc interface
var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GeneralJournal returns one page of transactions, newest first, with entry
// totals recomputed from the lines rather than trusted from storage.
func (s *ledgerService) GeneralJournal(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.JournalPage, error) {
	period := defaultPeriod(from, to)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, txns, err := s.txns.JournalPage(ctx, period.From, period.To, page, pageSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve journal page",
			slog.Int("page", page), slog.Int("pageSize", pageSize))
		return nil, fmt.Errorf("failed to retrieve journal page: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(txns))
	for _, txn := range txns {
		entry := domain.JournalEntry{
			TransactionID: txn.TransactionID,
			Date:          txn.Date,
			Reference:     txn.Reference,
			Description:   txn.Description,
			TotalDebit:    txn.TotalDebit(),
			TotalCredit:   txn.TotalCredit(),
		}
		for _, ln := range txn.Lines {
			entry.Lines = append(entry.Lines, domain.JournalLine{
				AccountCode: ln.AccountCode,
				AccountName: ln.AccountName,
				Debit:       ln.Debit,
				Credit:      ln.Credit,
				Note:        ln.Note,
			})
		}
		entries = append(entries, entry)
	}

	s.LogInfo(ctx, "General journal generated",
		slog.Int("page", page), slog.Int("entries", len(entries)), slog.Int("total", total))
	return &domain.JournalPage{
		ReportType: "general_journal",
		Period:     period,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		Entries:    entries,
	}, nil
}

// TrialBalance lists per-account turnovers with the raw net split.
func (s *ledgerService) TrialBalance(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.TrialBalanceReport, error) {
	return s.turnoverReport(ctx, "trial_balance", from, to, page, pageSize)
}

// GeneralLedger is the same turnover listing under its ledger name.
func (s *ledgerService) GeneralLedger(ctx context.Context, from, to time.Time, page, pageSize int) (*domain.TrialBalanceReport, error) {
	return s.turnoverReport(ctx, "general_ledger", from, to, page, pageSize)
}

// turnoverReport builds the shared trial-balance/general-ledger view. Totals
// cover the returned page window, matching the paged rows they accompany.
func (s *ledgerService) turnoverReport(ctx context.Context, reportType string, from, to time.Time, page, pageSize int) (*domain.TrialBalanceReport, error) {
	period := defaultPeriod(from, to)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	turnovers, err := s.txns.TurnoversBetween(ctx, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve turnovers",
			slog.String("reportType", reportType))
		return nil, fmt.Errorf("failed to retrieve turnovers: %w", err)
	}
	sort.Slice(turnovers, func(i, j int) bool { return turnovers[i].AccountCode < turnovers[j].AccountCode })

	start, end := pageWindow(len(turnovers), page, pageSize)
	rows := make([]domain.TrialBalanceRow, 0, end-start)
	var totals domain.TrialBalanceTotals
	for _, t := range turnovers[start:end] {
		debitBal, creditBal := accounting.SplitNet(t.Debit, t.Credit)
		rows = append(rows, domain.TrialBalanceRow{
			AccountCode:    t.AccountCode,
			AccountName:    t.AccountName,
			DebitTurnover:  t.Debit,
			CreditTurnover: t.Credit,
			DebitBalance:   debitBal,
			CreditBalance:  creditBal,
		})
		totals.DebitTurnover += t.Debit
		totals.CreditTurnover += t.Credit
		totals.DebitBalance += debitBal
		totals.CreditBalance += creditBal
	}

	s.LogInfo(ctx, "Turnover report generated",
		slog.String("reportType", reportType),
		slog.Int("page", page), slog.Int("rows", len(rows)))
	return &domain.TrialBalanceReport{
		ReportType: reportType,
		Period:     period,
		Page:       page,
		PageSize:   pageSize,
		Total:      len(turnovers),
		Rows:       rows,
		Totals:     totals,
	}, nil
}

// AccountLedger walks one account's postings chronologically from an opening
// balance computed strictly before the window start.
func (s *ledgerService) AccountLedger(ctx context.Context, accountCode string, from, to time.Time, page, pageSize int) (*domain.AccountLedgerReport, error) {
	return s.accountLedger(ctx, "account_ledger", accountCode, from, to, page, pageSize)
}

// CashBankStatement is the account ledger specialised to a cash or bank
// account; an empty code selects the configured default cash account.
func (s *ledgerService) CashBankStatement(ctx context.Context, accountCode string, from, to time.Time, page, pageSize int) (*domain.AccountLedgerReport, error) {
	if accountCode == "" {
		accountCode = s.cfg.CashAccountPrefix
	}
	return s.accountLedger(ctx, "cash_bank_statement", accountCode, from, to, page, pageSize)
}

func (s *ledgerService) accountLedger(ctx context.Context, reportType, accountCode string, from, to time.Time, page, pageSize int) (*domain.AccountLedgerReport, error) {
	period := defaultPeriod(from, to)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	account, err := s.accounts.FindAccountByCode(ctx, accountCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up account", slog.String("accountCode", accountCode))
		return nil, fmt.Errorf("failed to look up account %s: %w", accountCode, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountCode, apperrors.ErrNotFound)
	}
	nature := accounting.NatureOf(account.Code)

	openDebit, openCredit, err := s.txns.TurnoverForAccountBefore(ctx, account.AccountID, period.From)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("accountCode", accountCode))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	opening := accounting.BalanceFromTurnovers(nature, openDebit, openCredit)

	lines, err := s.txns.AccountLines(ctx, account.AccountID, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account lines", slog.String("accountCode", accountCode))
		return nil, fmt.Errorf("failed to retrieve account lines: %w", err)
	}
	accounting.SortPostedLines(lines)

	running := opening
	var debitTurnover, creditTurnover int64
	all := make([]domain.LedgerRow, 0, len(lines))
	for _, ln := range lines {
		running += accounting.LineDelta(nature, ln.Debit, ln.Credit)
		debitTurnover += ln.Debit
		creditTurnover += ln.Credit
		all = append(all, domain.LedgerRow{
			Date:           ln.Date,
			TransactionID:  ln.TransactionID,
			Reference:      ln.Reference,
			Description:    ln.Description,
			Debit:          ln.Debit,
			Credit:         ln.Credit,
			RunningBalance: running,
			Note:           ln.Note,
		})
	}
	start, end := pageWindow(len(all), page, pageSize)

	s.LogInfo(ctx, "Account ledger generated",
		slog.String("reportType", reportType),
		slog.String("accountCode", accountCode),
		slog.Int("rows", end-start), slog.Int("total", len(all)))
	return &domain.AccountLedgerReport{
		ReportType: reportType,
		Period:     period,
		Account: domain.LedgerAccountSummary{
			AccountCode:    account.Code,
			AccountName:    account.Name,
			DebitTurnover:  debitTurnover,
			CreditTurnover: creditTurnover,
			Balance:        running,
		},
		Page:     page,
		PageSize: pageSize,
		Total:    len(all),
		Rows:     all[start:end],
	}, nil
}

// BuildReversal constructs the mirror transaction of txn: each line's debit
// and credit swap, everything else carries over. Persisting the result is
// the caller's responsibility.
func (s *ledgerService) BuildReversal(txn domain.Transaction, reverseDate time.Time, reference, description string) domain.Transaction {
	if reference == "" {
		src := txn.Reference
		if src == "" {
			src = txn.TransactionID
			if len(src) > 8 {
				src = src[:8]
			}
		}
		reference = "REV-" + src
	}
	if description == "" {
		label := txn.Reference
		if label == "" {
			label = txn.TransactionID
		}
		description = "Reversal of " + label
	}

	rev := domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          reverseDate,
		Reference:     reference,
		Description:   description,
		Lines:         make([]domain.TransactionLine, 0, len(txn.Lines)),
	}
	for _, ln := range txn.Lines {
		rev.Lines = append(rev.Lines, domain.TransactionLine{
			LineID:        uuid.NewString(),
			TransactionID: rev.TransactionID,
			AccountID:     ln.AccountID,
			AccountCode:   ln.AccountCode,
			AccountName:   ln.AccountName,
			Debit:         ln.Credit,
			Credit:        ln.Debit,
			Note:          ln.Note,
		})
	}
	return rev
}
