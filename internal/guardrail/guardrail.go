package guardrail

import (
	"fmt"
	"os"
)

// Run executes the named checks against cfg.Root and returns the sorted report.
func Run(cfg Config, checks ...string) ([]Violation, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var rules []sourceRule
	schema := false
	for _, c := range checks {
		switch c {
		case CheckSingleWriter:
			rules = append(rules, singleWriterRule(cfg.SingleWriter))
		case CheckNoDelete:
			rules = append(rules, noDeleteRule(cfg.NoDelete))
		case CheckTenantSchema:
			schema = true
		default:
			return nil, fmt.Errorf("unknown check %q", c)
		}
	}

	var violations []Violation
	if len(rules) > 0 {
		found, err := scanSource(root, rules, cfg.Models)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}
	if schema {
		found, err := scanSchema(root, cfg.TenantSchema)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}
	return sortViolations(violations), nil
}

// AllChecks lists every check in report order.
func AllChecks() []string {
	return []string{CheckSingleWriter, CheckNoDelete, CheckTenantSchema}
}
