// Package guardrail statically checks the source tree for writes and deletes that
// bypass the posting engine, and the migrations for tables without a tenant column.
package guardrail

// Check names as they appear in reports.
const (
	CheckSingleWriter = "single-writer"
	CheckNoDelete     = "no-delete"
	CheckTenantSchema = "tenant-schema"
)

// SourceCheckConfig scopes a source check. Allow holds package directories, relative
// to the root, that are exempt (subdirectories included).
type SourceCheckConfig struct {
	Allow  []string `mapstructure:"allow" yaml:"allow"`
	Tables []string `mapstructure:"tables" yaml:"tables"`
}

// SchemaCheckConfig scopes the tenant-schema check.
type SchemaCheckConfig struct {
	Migrations string   `mapstructure:"migrations" yaml:"migrations"`
	Column     string   `mapstructure:"column" yaml:"column"`
	Exceptions []string `mapstructure:"exceptions" yaml:"exceptions"`
}

// Config is the full guardrail configuration, usually read from .guardrail.yaml.
type Config struct {
	Root         string            `mapstructure:"root" yaml:"root"`
	SingleWriter SourceCheckConfig `mapstructure:"single_writer" yaml:"single_writer"`
	NoDelete     SourceCheckConfig `mapstructure:"no_delete" yaml:"no_delete"`
	TenantSchema SchemaCheckConfig `mapstructure:"tenant_schema" yaml:"tenant_schema"`
	// Models maps Go type names passed to ORM calls, as in Create(&JournalEntry{}),
	// to the table they persist to. Keys are matched case-insensitively.
	Models map[string]string `mapstructure:"models" yaml:"models"`
}

// LedgerTables are written only by the posting engine.
var LedgerTables = []string{"journal_entries", "journal_lines", "reversal_links"}

// FinancialTables never lose rows.
var FinancialTables = []string{
	"transaction_sets",
	"business_transactions",
	"business_transaction_lines",
	"posting_intents",
	"journal_entries",
	"journal_lines",
	"documents",
	"document_extractions",
	"document_links",
	"reversal_links",
}

// ModelTables are the domain types whose rows land in a guarded table.
var ModelTables = map[string]string{
	"TransactionSet":          "transaction_sets",
	"BusinessTransaction":     "business_transactions",
	"BusinessTransactionLine": "business_transaction_lines",
	"PostingIntent":           "posting_intents",
	"JournalEntry":            "journal_entries",
	"JournalLine":             "journal_lines",
	"Document":                "documents",
	"DocumentExtraction":      "document_extractions",
	"DocumentLink":            "document_links",
	"ReversalLink":            "reversal_links",
}

// DefaultConfig returns the configuration used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		Root: ".",
		SingleWriter: SourceCheckConfig{
			Allow:  []string{"internal/core/posting"},
			Tables: append([]string(nil), LedgerTables...),
		},
		NoDelete: SourceCheckConfig{
			Allow:  []string{},
			Tables: append([]string(nil), FinancialTables...),
		},
		TenantSchema: SchemaCheckConfig{
			Migrations: "migrations",
			Column:     "tenant_id",
			Exceptions: []string{"tenants", "plan_catalog", "schema_migrations"},
		},
		Models: modelTables(),
	}
}

func modelTables() map[string]string {
	out := make(map[string]string, len(ModelTables))
	for k, v := range ModelTables {
		out[k] = v
	}
	return out
}
