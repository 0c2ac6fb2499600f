package guardrail

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func testConfig(root string) Config {
	cfg := DefaultConfig()
	cfg.Root = root
	return cfg
}

func lines(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

const postingStore = `package posting

const insertLines = ` + "`" + `
	INSERT INTO journal_lines (id) VALUES ($1)` + "`" + `
`

const rogueRepo = `package pgsql

// INSERT INTO journal_lines in a comment is never reported.
const markPosted = "UPDATE transaction_sets SET status = 'posted'"

func (r *Repo) Sneak() {
	_, _ = r.pool.Exec(ctx, ` + "`" + `
		SELECT 1;
		INSERT INTO journal_entries (id) VALUES ($1)` + "`" + `)
	_ = errors.New("could not insert into journal_lines")
}
`

func TestSingleWriter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"internal/core/posting/store.go":         postingStore,
		"internal/repositories/pgsql/rogue.go":   rogueRepo,
		"internal/repositories/pgsql/x_test.go":  "package pgsql\n\nconst q = \"INSERT INTO journal_lines (id) VALUES (1)\"\n",
		"internal/repositories/testdata/fixt.go": "package testdata\n\nconst q = \"INSERT INTO journal_lines (id) VALUES (1)\"\n",
		"_scratch/a.go":                          "package scratch\n\nconst q = \"INSERT INTO journal_lines (id) VALUES (1)\"\n",
	})

	vs, err := Run(testConfig(root), CheckSingleWriter)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/repositories/pgsql/rogue.go:9:3: [single-writer] INSERT INTO journal_entries outside the posting engine",
	}, lines(vs))
}

func TestSingleWriter_ConcatenationAndBuilders(t *testing.T) {
	src := `package repo

const table = "journal_lines"
const prefix = "INSERT INTO "

func a() {
	exec(prefix + table + " (id) VALUES ($1)")
	exec(prefix + "accounts (id) VALUES ($1)")
	db.Table("journal_lines").Where("id = ?", 1).Updates(row)
	db.Table("accounts").Create(&row)
	q.Insert("journal_entries").Values(1)
	conn.CopyFrom(ctx, pgx.Identifier{"public", "reversal_links"}, cols, src)
	conn.CopyFrom(ctx, pgx.Identifier{"statement_lines"}, cols, src)
}
`
	root := writeTree(t, map[string]string{"internal/repo/repo.go": src})

	vs, err := Run(testConfig(root), CheckSingleWriter)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/repo/repo.go:7:7: [single-writer] INSERT INTO journal_lines outside the posting engine",
		"internal/repo/repo.go:9:47: [single-writer] Updates() on journal_lines outside the posting engine",
		"internal/repo/repo.go:11:4: [single-writer] Insert() on journal_entries outside the posting engine",
		"internal/repo/repo.go:12:7: [single-writer] CopyFrom() on reversal_links outside the posting engine",
	}, lines(vs))
}

func TestNoDelete(t *testing.T) {
	src := `package repo

const purge = "DELETE FROM documents WHERE id = $1"

func b() {
	exec("DELETE FROM statement_lines WHERE session_id = $1")
	exec("TRUNCATE journal_lines")
	db.Table("posting_intents").Where("x").Delete(nil)
	q.Delete("transaction_sets")
}
`
	root := writeTree(t, map[string]string{
		"internal/repo/repo.go":          src,
		"internal/core/posting/store.go": "package posting\n\nconst q = \"DELETE FROM journal_lines\"\n",
	})

	vs, err := Run(testConfig(root), CheckNoDelete)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/core/posting/store.go:3:12: [no-delete] DELETE FROM journal_lines: financial rows are never deleted",
		"internal/repo/repo.go:3:16: [no-delete] DELETE FROM documents: financial rows are never deleted",
		"internal/repo/repo.go:7:8: [no-delete] TRUNCATE journal_lines: financial rows are never deleted",
		"internal/repo/repo.go:8:41: [no-delete] Delete() on posting_intents: financial rows are never deleted",
		"internal/repo/repo.go:9:4: [no-delete] Delete() on transaction_sets: financial rows are never deleted",
	}, lines(vs))
}

func TestSourceChecks_ModelsAndFormattedSQL(t *testing.T) {
	src := `package repo

const table = "journal_entries"

func c(db *gorm.DB, id, name string) {
	db.Create(&domain.JournalEntry{})
	db.Delete(&domain.JournalLine{}, id)
	db.Where("id = ?", id).Delete(&domain.JournalEntry{})
	db.Model(&domain.ReversalLink{}).Where("id = ?", id).Updates(map[string]any{"reason": "x"})
	db.Save(new(domain.JournalLine))
	db.Create(&domain.Account{})
	db.Delete(&domain.TransactionSet{}, id)
	exec(fmt.Sprintf("DELETE FROM %s WHERE id = $1", "journal_lines"))
	exec(fmt.Sprintf("DELETE FROM documents WHERE id = '%s'", id))
	exec(fmt.Sprintf("INSERT INTO %s (id) VALUES ($1)", table))
	exec(fmt.Sprintf("DELETE FROM %s", name))
}
`
	root := writeTree(t, map[string]string{
		"internal/repo/repo.go":          src,
		"internal/core/posting/store.go": "package posting\n\nfunc w(db *gorm.DB) { db.Create(&JournalEntry{}) }\n",
	})

	vs, err := Run(testConfig(root), CheckSingleWriter, CheckNoDelete)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/repo/repo.go:6:5: [single-writer] Create() on journal_entries outside the posting engine",
		"internal/repo/repo.go:7:5: [no-delete] Delete() on journal_lines: financial rows are never deleted",
		"internal/repo/repo.go:8:25: [no-delete] Delete() on journal_entries: financial rows are never deleted",
		"internal/repo/repo.go:9:55: [single-writer] Updates() on reversal_links outside the posting engine",
		"internal/repo/repo.go:10:5: [single-writer] Save() on journal_lines outside the posting engine",
		"internal/repo/repo.go:12:5: [no-delete] Delete() on transaction_sets: financial rows are never deleted",
		"internal/repo/repo.go:13:11: [no-delete] DELETE FROM journal_lines: financial rows are never deleted",
		"internal/repo/repo.go:14:20: [no-delete] DELETE FROM documents: financial rows are never deleted",
		"internal/repo/repo.go:15:11: [single-writer] INSERT INTO journal_entries outside the posting engine",
	}, lines(vs))
}

func TestSourceChecks_CustomModelMapping(t *testing.T) {
	root := writeTree(t, map[string]string{
		"internal/repo/repo.go": "package repo\n\nfunc c(db *gorm.DB) { db.Create(&ledgerRow{}) }\n",
	})
	cfg := testConfig(root)
	cfg.Models = map[string]string{"ledgerrow": "public.journal_lines"}

	vs, err := Run(cfg, CheckSingleWriter)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/repo/repo.go:3:26: [single-writer] Create() on journal_lines outside the posting engine",
	}, lines(vs))
}

func TestRun_IsDeterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/a.go": "package a\n\nconst q = \"INSERT INTO journal_lines (id) VALUES (1)\"\n",
		"b/b.go": "package b\n\nconst q = \"DELETE FROM journal_lines\"\n",
	})
	cfg := testConfig(root)

	first, err := Run(cfg, CheckSingleWriter, CheckNoDelete)
	require.NoError(t, err)
	second, err := Run(cfg, CheckSingleWriter, CheckNoDelete)
	require.NoError(t, err)

	var out1, out2 bytes.Buffer
	require.NoError(t, WriteReport(&out1, first))
	require.NoError(t, WriteReport(&out2, second))
	assert.Equal(t, out1.String(), out2.String())
	assert.Len(t, first, 2)
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(testConfig(filepath.Join(t.TempDir(), "missing")), CheckSingleWriter)
	assert.Error(t, err)

	_, err = Run(testConfig(t.TempDir()), "no-such-check")
	assert.Error(t, err)

	root := writeTree(t, map[string]string{"bad/bad.go": "package bad\n\nfunc {"})
	_, err = Run(testConfig(root), CheckSingleWriter)
	assert.Error(t, err)
}

func TestTenantSchema(t *testing.T) {
	root := writeTree(t, map[string]string{
		"migrations/000001_init.up.sql": `-- tenants are global
CREATE TABLE IF NOT EXISTS tenants (
    tenant_id TEXT PRIMARY KEY
);

CREATE TABLE widgets (
    widget_id TEXT PRIMARY KEY,
    note TEXT DEFAULT 'a; b',
    CONSTRAINT tenant_id_check CHECK (widget_id <> '')
);

CREATE TABLE gadgets (
    gadget_id TEXT PRIMARY KEY
);

CREATE TABLE scratch (id INT);

CREATE OR REPLACE FUNCTION f() RETURNS trigger AS $$
BEGIN
    CREATE TABLE inner_table (id INT);
END;
$$ LANGUAGE plpgsql;
`,
		"migrations/000002_more.up.sql": `ALTER TABLE gadgets ADD COLUMN tenant_id TEXT NOT NULL;
DROP TABLE IF EXISTS scratch;
/* CREATE TABLE commented (id INT); */
CREATE TABLE plan_catalog (plan_id TEXT);
`,
		"migrations/000002_more.down.sql": "CREATE TABLE down_only (id INT);\n",
	})

	vs, err := Run(testConfig(root), CheckTenantSchema)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/000001_init.up.sql:6:1: [tenant-schema] table widgets has no tenant_id column",
	}, lines(vs))
}

func TestTenantSchema_RepositoryMigrations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = filepath.Join("..", "..")

	vs, err := Run(cfg, CheckTenantSchema)

	require.NoError(t, err)
	assert.Empty(t, lines(vs))
}
