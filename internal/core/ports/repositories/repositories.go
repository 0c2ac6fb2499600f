package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ActorRepo          ActorRepository
	TenantSettingsRepo TenantSettingsReader
	TransactionSetRepo TransactionSetRepositoryFacade
	ApprovalRepo       ApprovalRepositoryFacade
	AccountRepo        AccountRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	PeriodRepo         PeriodRepositoryFacade
	AuditRepo          AuditRepositoryFacade
}
