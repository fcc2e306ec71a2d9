package services

import (
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Reporting, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	if cfg == nil {
		cfg = config.Default()
	}

	container := &portssvc.ServiceContainer{}
	container.Statements = NewStatementService(repos.AccountRepo, repos.TransactionRepo, WithStatementConfig(cfg))
	container.Ledgers = NewLedgerService(repos.AccountRepo, repos.TransactionRepo, WithLedgerConfig(cfg))
	container.Operations = NewOperationsService(repos.EntityRepo, WithOperationsConfig(cfg))
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Sales = NewSalesService(repos.InvoiceRepo, repos.EntityRepo)
	container.Fees = NewFeeService(repos.FeeRepo, WithFeeConfig(cfg))
	return container
}
