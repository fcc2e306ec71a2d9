package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Reporting holds the chart-of-accounts anchor codes and tuning knobs the
// report builders depend on. The defaults match the standard chart the
// application seeds; deployments with a customised chart override them via
// environment variables.
type Reporting struct {
	// CashAccountPrefix marks cash/bank accounts for the cash flow walk and
	// is the default account for the cash/bank statement.
	CashAccountPrefix string
	// ReceivableAccountCode is the accounts-receivable anchor used by
	// per-client running balances and aging.
	ReceivableAccountCode string
	// PayableAccountPrefix marks accounts-payable accounts used by
	// supplier/payee running balances and aging.
	PayableAccountPrefix string
	// InvestingPrefix and EquityPrefix drive cash flow activity
	// classification of counterparty lines.
	InvestingPrefix string
	EquityPrefix    string
	// COGSPrefix, OpexPrefix and OtherExpensePrefix partition expense
	// accounts on the income statement.
	COGSPrefix         string
	OpexPrefix         string
	OtherExpensePrefix string
	// FeeExpenseAccountCode receives the debit leg of generated fee lines.
	FeeExpenseAccountCode string
	// GrossRefineWindow bounds the linear refinement around the binary
	// search result when solving a fee base from a gross amount, in minor
	// currency units.
	GrossRefineWindow int64
	IsProduction      bool
}

// Load reads reporting configuration from environment variables, with a .env
// file honoured first if present.
func Load() (*Reporting, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("CASH_ACCOUNT_PREFIX", "1110")
	viper.SetDefault("RECEIVABLE_ACCOUNT_CODE", "1112")
	viper.SetDefault("PAYABLE_ACCOUNT_PREFIX", "21")
	viper.SetDefault("INVESTING_PREFIX", "12")
	viper.SetDefault("EQUITY_PREFIX", "31")
	viper.SetDefault("COGS_PREFIX", "51")
	viper.SetDefault("OPEX_PREFIX", "61")
	viper.SetDefault("OTHER_EXPENSE_PREFIX", "62")
	viper.SetDefault("FEE_EXPENSE_ACCOUNT_CODE", "6210")
	viper.SetDefault("GROSS_REFINE_WINDOW", int64(10_000))
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := Default()
	cfg.CashAccountPrefix = viper.GetString("CASH_ACCOUNT_PREFIX")
	cfg.ReceivableAccountCode = viper.GetString("RECEIVABLE_ACCOUNT_CODE")
	cfg.PayableAccountPrefix = viper.GetString("PAYABLE_ACCOUNT_PREFIX")
	cfg.InvestingPrefix = viper.GetString("INVESTING_PREFIX")
	cfg.EquityPrefix = viper.GetString("EQUITY_PREFIX")
	cfg.COGSPrefix = viper.GetString("COGS_PREFIX")
	cfg.OpexPrefix = viper.GetString("OPEX_PREFIX")
	cfg.OtherExpensePrefix = viper.GetString("OTHER_EXPENSE_PREFIX")
	cfg.FeeExpenseAccountCode = viper.GetString("FEE_EXPENSE_ACCOUNT_CODE")
	cfg.GrossRefineWindow = viper.GetInt64("GROSS_REFINE_WINDOW")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	if cfg.GrossRefineWindow < 0 {
		log.Printf("Warning: invalid GROSS_REFINE_WINDOW %d, using default\n", cfg.GrossRefineWindow)
		cfg.GrossRefineWindow = 10_000
	}
	return cfg, nil
}

// Default returns the built-in reporting configuration without consulting the
// environment. Tests and embedded callers use it directly.
func Default() *Reporting {
	return &Reporting{
		CashAccountPrefix:     "1110",
		ReceivableAccountCode: "1112",
		PayableAccountPrefix:  "21",
		InvestingPrefix:       "12",
		EquityPrefix:          "31",
		COGSPrefix:            "51",
		OpexPrefix:            "61",
		OtherExpensePrefix:    "62",
		FeeExpenseAccountCode: "6210",
		GrossRefineWindow:     10_000,
	}
}
