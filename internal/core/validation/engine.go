// Package validation evaluates draft transaction sets against a fixed rule set.
// The engine is a pure function of its inputs: no clock, no I/O, no IDs.
package validation

import (
	"sort"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// Input is everything a rule may look at.
type Input struct {
	TenantID     string
	Set          domain.TransactionSet
	Transactions []domain.BusinessTransaction
	HasDocument  bool
	Config       domain.TenantConfig
}

// Rule inspects the input and returns zero or more findings.
type Rule struct {
	Code     string
	Severity domain.Severity
	Check    func(in Input) []Finding
}

// Finding is a rule hit before it is stamped into a ValidationIssue.
type Finding struct {
	Message string
	Context map[string]string
}

// Engine runs a fixed list of rules.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine with the default rule set.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules returns an engine with a custom rule set.
func NewEngineWithRules(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Validate returns the issues found for the set. Identical inputs yield identical output.
func (e *Engine) Validate(tenantID string, set domain.TransactionSet, transactions []domain.BusinessTransaction, hasDocument bool, cfg domain.TenantConfig) []domain.ValidationIssue {
	in := Input{
		TenantID:     tenantID,
		Set:          set,
		Transactions: transactions,
		HasDocument:  hasDocument,
		Config:       cfg,
	}

	issues := []domain.ValidationIssue{}
	for _, rule := range e.rules {
		for _, finding := range rule.Check(in) {
			issues = append(issues, domain.ValidationIssue{
				TenantID:         tenantID,
				TransactionSetID: set.TransactionSetID,
				Severity:         rule.Severity,
				Code:             rule.Code,
				Message:          finding.Message,
				Context:          finding.Context,
			})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Code < issues[j].Code
	})
	return issues
}
