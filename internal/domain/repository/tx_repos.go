package repository

// TxRepos agrupa los repositorios atados a una misma transacción (o al pool fuera de ella).
type TxRepos struct {
	Products       ProductRepository
	Locations      LocationRepository
	Counterparties CounterpartyRepository
	Stock          StockRepository
	Movements      StockMovementRepository
	Accounts       AccountRepository
	Entries        LedgerEntryRepository
	Payables       PayableRepository
	Receivables    ReceivableRepository
	PurchaseOrders PurchaseOrderRepository
	SalesOrders    SalesOrderRepository
}
