package guardrail

import (
	"regexp"
	"strings"
)

// tableName matches an optionally schema-qualified, optionally quoted table name.
const (
	tableName = `(?:"?[A-Za-z_][\w$]*"?\.)?"?[A-Za-z_][\w$]*"?`
	tableRef  = `(` + tableName + `)`
)

// sqlStatement accepts strings that open like a SQL statement, after leading line comments.
var sqlStatement = regexp.MustCompile(`(?is)^\s*(?:--[^\n]*\n\s*)*(?:INSERT|UPDATE|DELETE|MERGE|COPY|TRUNCATE|WITH|SELECT)\b`)

type opPattern struct {
	op string
	re *regexp.Regexp
	// multi is set when the table group is a comma separated list.
	multi bool
}

var writePatterns = []opPattern{
	{op: "INSERT INTO", re: regexp.MustCompile(`(?i)\bINSERT\s+INTO\s+` + tableRef)},
	{op: "UPDATE", re: regexp.MustCompile(`(?i)\bUPDATE\s+(?:ONLY\s+)?` + tableRef + `(?:\s+(?:AS\s+)?[A-Za-z_]\w*)?\s+SET\b`)},
	{op: "MERGE INTO", re: regexp.MustCompile(`(?i)\bMERGE\s+INTO\s+` + tableRef)},
	{op: "COPY", re: regexp.MustCompile(`(?i)\bCOPY\s+` + tableRef + `(?:\s*\([^)]*\))?\s+FROM\b`)},
}

var deletePatterns = []opPattern{
	{op: "DELETE FROM", re: regexp.MustCompile(`(?i)\bDELETE\s+FROM\s+(?:ONLY\s+)?` + tableRef)},
	{op: "TRUNCATE", re: regexp.MustCompile(`(?i)\bTRUNCATE\s+(?:TABLE\s+)?(?:ONLY\s+)?(` + tableName + `(?:\s*,\s*` + tableName + `)*)`), multi: true},
}

// sqlOp is a statement fragment acting on one table. Offset is the byte offset of the
// keyword inside the scanned string.
type sqlOp struct {
	Op     string
	Table  string
	Offset int
}

func isSQL(s string) bool {
	return sqlStatement.MatchString(s)
}

func normalizeTable(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `"`, "")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// findOps returns the operations in s whose table is in tables. Prose is ignored:
// s must read as a SQL statement, though the operation may sit inside a CTE.
func findOps(s string, patterns []opPattern, tables map[string]bool) []sqlOp {
	if !isSQL(s) {
		return nil
	}
	var ops []sqlOp
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(s, -1) {
			names := []string{s[m[2]:m[3]]}
			if p.multi {
				names = strings.Split(s[m[2]:m[3]], ",")
			}
			for _, name := range names {
				table := normalizeTable(name)
				if tables[table] {
					ops = append(ops, sqlOp{Op: p.op, Table: table, Offset: m[0]})
				}
			}
		}
	}
	return ops
}

func tableSet(tables []string) map[string]bool {
	set := make(map[string]bool, len(tables))
	for _, t := range tables {
		set[normalizeTable(t)] = true
	}
	return set
}
