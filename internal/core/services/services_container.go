package services

import (
	"github.com/SscSPs/finance_core/internal/audit"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/core/posting"
	"github.com/SscSPs/finance_core/internal/core/validation"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, ledger posting.Store, rules RuleSource, parser StatementParser, emitter audit.Emitter) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The gate is shared: intake and re-validation escalate through the same decision.
	escalation := NewEscalationService(repos.ApprovalRepo, repos.ActorRepo, emitter)
	container.Escalation = escalation

	container.Account = NewAccountService(repos.AccountRepo, repos.ActorRepo, repos.TenantSettingsRepo, rules, emitter)
	container.DraftIntake = NewDraftIntakeService(
		repos.TransactionSetRepo,
		repos.ActorRepo,
		repos.TenantSettingsRepo,
		repos.PeriodRepo,
		rules,
		validation.NewEngine(),
		escalation,
		emitter,
	)
	container.Posting = posting.NewEngine(ledger, repos.ActorRepo, rules, emitter)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.AccountRepo, repos.ActorRepo, rules, parser, emitter)
	container.PeriodClose = NewPeriodCloseService(repos.PeriodRepo, repos.ActorRepo, emitter)

	return container
}
