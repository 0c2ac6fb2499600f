package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
)

// RuleSource is the rule book as seen by the services.
type RuleSource interface {
	MinorUnits(code string) (int32, error)
	TenantConfig(settings *domain.TenantSettings, periods []domain.PeriodWindow) (domain.TenantConfig, error)
}

// tenantConfigLoader merges rule book defaults, tenant overrides and non-open periods.
type tenantConfigLoader struct {
	rules    RuleSource
	settings portsrepo.TenantSettingsReader
	periods  portsrepo.PeriodReader
}

func (l tenantConfigLoader) load(ctx context.Context, tenantID string) (domain.TenantConfig, error) {
	settings, err := l.settings.FindTenantSettings(ctx, tenantID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.TenantConfig{}, fmt.Errorf("failed to load tenant settings: %w", err)
	}

	var windows []domain.PeriodWindow
	if l.periods != nil {
		windows, err = l.periods.ListNonOpenPeriods(ctx, tenantID)
		if err != nil {
			return domain.TenantConfig{}, fmt.Errorf("failed to load accounting periods: %w", err)
		}
	}

	return l.rules.TenantConfig(settings, windows)
}
