package services

// ServiceContainer bundles every service interface so callers receive the
// whole engine as one dependency.
type ServiceContainer struct {
	Statements StatementSvc
	Ledgers    LedgerSvc
	Operations OperationsSvc
	Inventory  InventorySvc
	Sales      SalesSvc
	Fees       FeeSvc
}
