package pgsql

import (
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository except the ledger store, which lives
// with the posting engine.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	actorRepo := newPgxActorRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ActorRepo:          actorRepo,
		TenantSettingsRepo: actorRepo,
		TransactionSetRepo: newPgxTransactionSetRepository(dbPool),
		ApprovalRepo:       newPgxApprovalRepository(dbPool),
		AccountRepo:        newPgxAccountRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		PeriodRepo:         newPgxPeriodRepository(dbPool),
		AuditRepo:          newPgxAuditRepository(dbPool),
	}
}
