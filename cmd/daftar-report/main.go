// Command daftar-report loads a bookkeeping dataset from a JSON file into
// the in-memory store, runs one report, and prints it as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/daftarhq/daftar/internal/adapters/memory"
	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/daftarhq/daftar/internal/core/services"
	"github.com/daftarhq/daftar/internal/logging"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// dataset is the JSON shape the CLI ingests.
type dataset struct {
	Accounts     []domain.Account          `json:"accounts"`
	Entities     []domain.Entity           `json:"entities"`
	Transactions []domain.Transaction      `json:"transactions"`
	Links        []domain.EntityLink       `json:"links"`
	Items        []domain.InventoryItem    `json:"items"`
	Movements    []domain.InventoryMovement `json:"movements"`
	Invoices     []struct {
		domain.Invoice
		Items []domain.InvoiceItem `json:"items"`
	} `json:"invoices"`
	Methods      []domain.PaymentMethod   `json:"methods"`
	Rules        []domain.FeeRule         `json:"rules"`
	Applications []domain.FeeApplication  `json:"applications"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var (
		dataPath    = flag.String("data", "", "path to the JSON dataset")
		report      = flag.String("report", "trial_balance", "report to run: balance_sheet, income_statement, cash_flow, general_journal, trial_balance, general_ledger, account_ledger, cash_bank_statement, debtor_creditor, aged_balances, person_balance, inventory_balance, inventory_movements, sales_by_product, sales_by_invoice, purchase_by_product, purchase_by_invoice")
		fromArg     = flag.String("from", "", "period start (YYYY-MM-DD)")
		toArg       = flag.String("to", "", "period end (YYYY-MM-DD)")
		page        = flag.Int("page", 1, "page number for paged reports")
		pageSize    = flag.Int("page-size", 50, "page size for paged reports")
		accountCode = flag.String("account", "", "account code for ledger reports")
		entityID    = flag.String("entity", "", "entity id for the person balance report")
		role        = flag.String("role", "client", "entity role for the person balance report")
		itemID      = flag.String("item", "", "item id filter for inventory movements")
		shape       = flag.String("shape", "three_bucket", "aging shape: three_bucket or four_bucket")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := memory.NewStore(cfg)
	if *dataPath != "" {
		if err := loadDataset(store, *dataPath); err != nil {
			logger.Error("Failed to load dataset", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	container := services.NewServiceContainer(cfg, store.Provider())

	ctx := logging.WithLogger(context.Background(), logging.NewReportLogger(logger, *report))
	from, err := parseDate(*fromArg)
	if err != nil {
		logger.Error("Invalid from date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	to, err := parseDate(*toArg)
	if err != nil {
		logger.Error("Invalid to date", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var result any
	switch *report {
	case "balance_sheet":
		result, err = container.Statements.BalanceSheet(ctx, to, nil)
	case "income_statement":
		result, err = container.Statements.IncomeStatement(ctx, from, to)
	case "cash_flow":
		result, err = container.Statements.CashFlow(ctx, from, to)
	case "general_journal":
		result, err = container.Ledgers.GeneralJournal(ctx, from, to, *page, *pageSize)
	case "trial_balance":
		result, err = container.Ledgers.TrialBalance(ctx, from, to, *page, *pageSize)
	case "general_ledger":
		result, err = container.Ledgers.GeneralLedger(ctx, from, to, *page, *pageSize)
	case "account_ledger":
		result, err = container.Ledgers.AccountLedger(ctx, *accountCode, from, to, *page, *pageSize)
	case "cash_bank_statement":
		result, err = container.Ledgers.CashBankStatement(ctx, *accountCode, from, to, *page, *pageSize)
	case "debtor_creditor":
		result, err = container.Operations.DebtorCreditor(ctx, from, to)
	case "aged_balances":
		result, err = container.Operations.AgedBalances(ctx, to, accounting.AgingShape(*shape))
	case "person_balance":
		result, err = container.Operations.PersonRunningBalance(ctx, *entityID, domain.EntityRole(*role), from, to)
	case "inventory_balance":
		result, err = container.Inventory.BalanceReport(ctx, to)
	case "inventory_movements":
		result, err = container.Inventory.MovementReport(ctx, from, to, *page, *pageSize, *itemID)
	case "sales_by_product":
		result, err = container.Sales.SalesByProduct(ctx, from, to)
	case "sales_by_invoice":
		result, err = container.Sales.SalesByInvoice(ctx, from, to)
	case "purchase_by_product":
		result, err = container.Sales.PurchaseByProduct(ctx, from, to)
	case "purchase_by_invoice":
		result, err = container.Sales.PurchaseByInvoice(ctx, from, to)
	default:
		logger.Error("Unknown report", slog.String("report", *report))
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Report failed", slog.String("report", *report), slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("Failed to encode report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadDataset(store *memory.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	var data dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	for _, acc := range data.Accounts {
		store.AddAccount(acc)
	}
	for _, ent := range data.Entities {
		store.AddEntity(ent)
	}
	for _, txn := range data.Transactions {
		store.AddTransaction(txn)
	}
	for _, link := range data.Links {
		store.LinkEntity(link.TransactionID, link.EntityID, link.Role)
	}
	for _, item := range data.Items {
		store.AddItem(item)
	}
	for _, mv := range data.Movements {
		store.AddMovement(mv)
	}
	for _, inv := range data.Invoices {
		store.AddInvoice(inv.Invoice, inv.Items)
	}
	for _, m := range data.Methods {
		store.AddPaymentMethod(m)
	}
	for _, rule := range data.Rules {
		if err := store.SaveRule(context.Background(), rule); err != nil {
			return err
		}
	}
	for _, app := range data.Applications {
		store.AddApplication(app)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
