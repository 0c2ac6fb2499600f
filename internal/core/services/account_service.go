package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/utils/pagination"
)

var mappingKeyPattern = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

// AccountService maintains the chart of accounts and the posting-intent mapping keys.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	config      tenantConfigLoader
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	actors portsrepo.ActorRepository,
	settings portsrepo.TenantSettingsReader,
	rules RuleSource,
	emitter audit.Emitter,
) *AccountService {
	return &AccountService{
		BaseService: newBaseService(actors, emitter),
		accountRepo: accountRepo,
		config:      tenantConfigLoader{rules: rules, settings: settings},
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, identity domain.Identity, req dto.CreateAccountRequest) (*domain.Account, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown account type %q", req.AccountType))
	}

	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		cfg, err := s.config.load(ctx, identity.TenantID)
		if err != nil {
			return nil, err
		}
		currency = cfg.CurrencyCode
	}
	if _, err := s.config.rules.MinorUnits(currency); err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported currency %q", currency))
	}

	account := domain.Account{
		AccountID:    s.newID(),
		TenantID:     identity.TenantID,
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor.ActorID, s.now()),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("account code %s already exists", account.Code))
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully", slog.String("account_id", account.AccountID))
	s.Emit(ctx, actor, "account", account.AccountID, "account.created", map[string]any{
		"code":     account.Code,
		"currency": account.CurrencyCode,
	})
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, identity domain.Identity, accountID string) (*domain.Account, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, identity.TenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, identity domain.Identity, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	limit := pagination.NormalizeLimit(params.Limit, 100)
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, identity.TenantID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *AccountService) ListMappings(ctx context.Context, identity domain.Identity) ([]domain.AccountMapping, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	mappings, err := s.accountRepo.ListAccountMappings(ctx, identity.TenantID)
	if err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = []domain.AccountMapping{}
	}
	return mappings, nil
}

// UpsertMapping points mappingKey at an active account of the tenant.
func (s *AccountService) UpsertMapping(ctx context.Context, identity domain.Identity, mappingKey string, req dto.UpsertMappingRequest) (*domain.AccountMapping, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(strings.TrimSpace(mappingKey))
	if len(key) > 64 || !mappingKeyPattern.MatchString(key) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid mapping key %q", mappingKey))
	}

	account, err := s.accountRepo.FindAccountByID(ctx, identity.TenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("account %s is inactive", account.Code))
	}

	mapping, err := s.accountRepo.UpsertAccountMapping(ctx, domain.AccountMapping{
		TenantID:    identity.TenantID,
		MappingKey:  key,
		AccountID:   account.AccountID,
		AuditFields: domain.NewAuditFields(actor.ActorID, s.now()),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert account mapping", slog.String("mapping_key", key))
		return nil, err
	}

	s.Emit(ctx, actor, "account_mapping", key, "account_mapping.upserted", map[string]any{"accountID": account.AccountID})
	return mapping, nil
}
