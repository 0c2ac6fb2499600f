package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindOps(t *testing.T) {
	ledger := tableSet(LedgerTables)
	financial := tableSet(FinancialTables)

	tests := []struct {
		name     string
		sql      string
		patterns []opPattern
		tables   map[string]bool
		want     []sqlOp
	}{
		{
			name:     "insert",
			sql:      "INSERT INTO journal_lines (a) VALUES ($1)",
			patterns: writePatterns, tables: ledger,
			want: []sqlOp{{Op: "INSERT INTO", Table: "journal_lines", Offset: 0}},
		},
		{
			name:     "quoted and schema qualified",
			sql:      `insert into public."journal_entries" (a) values (1)`,
			patterns: writePatterns, tables: ledger,
			want: []sqlOp{{Op: "INSERT INTO", Table: "journal_entries", Offset: 0}},
		},
		{
			name:     "update with alias",
			sql:      "UPDATE journal_lines jl SET memo = $1",
			patterns: writePatterns, tables: ledger,
			want: []sqlOp{{Op: "UPDATE", Table: "journal_lines", Offset: 0}},
		},
		{
			name:     "write inside a CTE",
			sql:      "WITH e AS (INSERT INTO journal_entries (a) VALUES (1) RETURNING id) SELECT id FROM e",
			patterns: writePatterns, tables: ledger,
			want: []sqlOp{{Op: "INSERT INTO", Table: "journal_entries", Offset: 11}},
		},
		{
			name:     "copy from",
			sql:      "COPY journal_lines (a, b) FROM STDIN",
			patterns: writePatterns, tables: ledger,
			want: []sqlOp{{Op: "COPY", Table: "journal_lines", Offset: 0}},
		},
		{
			name:     "other tables are fine",
			sql:      "INSERT INTO accounts (a) VALUES (1)",
			patterns: writePatterns, tables: ledger,
		},
		{
			name:     "prose is not SQL",
			sql:      "failed to insert into journal_lines",
			patterns: writePatterns, tables: ledger,
		},
		{
			name:     "on conflict update is not a table update",
			sql:      "INSERT INTO account_mappings (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = EXCLUDED.a",
			patterns: writePatterns, tables: ledger,
		},
		{
			name:     "delete",
			sql:      "DELETE FROM ONLY documents WHERE id = $1",
			patterns: deletePatterns, tables: financial,
			want: []sqlOp{{Op: "DELETE FROM", Table: "documents", Offset: 0}},
		},
		{
			name:     "truncate several tables",
			sql:      "TRUNCATE TABLE accounts, posting_intents, journal_lines CASCADE",
			patterns: deletePatterns, tables: financial,
			want: []sqlOp{
				{Op: "TRUNCATE", Table: "posting_intents", Offset: 0},
				{Op: "TRUNCATE", Table: "journal_lines", Offset: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findOps(tt.sql, tt.patterns, tt.tables))
		})
	}
}

func TestIsSQL(t *testing.T) {
	assert.True(t, isSQL("  \n\tSELECT 1"))
	assert.True(t, isSQL("-- bump status\nUPDATE transaction_sets SET status = 'posted'"))
	assert.False(t, isSQL("could not delete from documents"))
	assert.False(t, isSQL(""))
}
