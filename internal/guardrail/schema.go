package guardrail

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	createTableRe = regexp.MustCompile(`(?is)^CREATE\s+(?:(?:GLOBAL|LOCAL)\s+)?(?:(?:TEMP|TEMPORARY|UNLOGGED)\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` + tableRef + `\s*\(`)
	alterTableRe  = regexp.MustCompile(`(?is)^ALTER\s+TABLE\s+(?:IF\s+EXISTS\s+)?(?:ONLY\s+)?` + tableRef + `\s+(.*)$`)
	addColumnRe   = regexp.MustCompile(`(?i)\bADD\s+(?:COLUMN\s+)?(?:IF\s+NOT\s+EXISTS\s+)?("?[A-Za-z_][\w$]*"?)`)
	dropTableRe   = regexp.MustCompile(`(?is)^DROP\s+TABLE\s+(?:IF\s+EXISTS\s+)?(` + tableName + `(?:\s*,\s*` + tableName + `)*)`)
)

// constraintWords open a table element or ADD clause that is not a column.
var constraintWords = map[string]bool{
	"constraint": true, "primary": true, "foreign": true, "unique": true,
	"check": true, "exclude": true, "like": true,
}

type schemaTable struct {
	file    string
	line    int
	column  int
	columns map[string]bool
}

// statement is one SQL statement with the offset of its first character.
type statement struct {
	text   string
	offset int
}

// splitStatements blanks comments and splits on semicolons outside quotes.
// Dollar-quoted bodies are kept whole.
func splitStatements(src string) []statement {
	b := []byte(src)
	var stmts []statement
	start := 0
	emit := func(end int) {
		raw := string(b[start:end])
		trimmed := strings.TrimLeft(raw, " \t\r\n")
		if strings.TrimSpace(trimmed) != "" {
			stmts = append(stmts, statement{text: strings.TrimSpace(trimmed), offset: start + len(raw) - len(trimmed)})
		}
	}

	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '-' && i+1 < len(b) && b[i+1] == '-':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '*':
			for i < len(b) && !(b[i] == '*' && i+1 < len(b) && b[i+1] == '/') {
				if b[i] != '\n' {
					b[i] = ' '
				}
				i++
			}
			if i < len(b) {
				b[i], b[i+1] = ' ', ' '
				i++
			}
		case b[i] == '\'':
			for i++; i < len(b) && b[i] != '\''; i++ {
			}
		case b[i] == '$':
			j := i + 1
			for j < len(b) && (b[j] == '_' || b[j] >= 'a' && b[j] <= 'z' || b[j] >= 'A' && b[j] <= 'Z') {
				j++
			}
			if j < len(b) && b[j] == '$' {
				tag := string(b[i : j+1])
				if end := strings.Index(string(b[j+1:]), tag); end >= 0 {
					i = j + 1 + end + len(tag) - 1
				} else {
					i = len(b) - 1
				}
			}
		case b[i] == ';':
			emit(i)
			start = i + 1
		}
	}
	emit(len(b))
	return stmts
}

// tableElements splits the body of CREATE TABLE (...) on top-level commas.
func tableElements(s string) []string {
	depth := 0
	var parts []string
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return append(parts, s[last:i])
			}
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], `"`))
}

func lineCol(src string, offset int) (int, int) {
	prefix := src[:offset]
	line := strings.Count(prefix, "\n") + 1
	return line, offset - strings.LastIndex(prefix, "\n")
}

// scanSchema replays the up migrations in order and reports tables lacking the
// tenant column.
func scanSchema(root string, cfg SchemaCheckConfig) ([]Violation, error) {
	dir := filepath.Join(root, cfg.Migrations)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	column := strings.ToLower(cfg.Column)
	tables := map[string]*schemaTable{}
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration: %w", err)
		}
		rel, err := filepath.Rel(root, f)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)
		src := string(content)

		for _, stmt := range splitStatements(src) {
			switch {
			case createTableRe.MatchString(stmt.text):
				m := createTableRe.FindStringSubmatchIndex(stmt.text)
				name := normalizeTable(stmt.text[m[2]:m[3]])
				line, col := lineCol(src, stmt.offset)
				t := &schemaTable{file: rel, line: line, column: col, columns: map[string]bool{}}
				for _, el := range tableElements(stmt.text[m[1]:]) {
					if w := firstWord(el); w != "" && !constraintWords[w] {
						t.columns[w] = true
					}
				}
				tables[name] = t
			case alterTableRe.MatchString(stmt.text):
				m := alterTableRe.FindStringSubmatch(stmt.text)
				t, ok := tables[normalizeTable(m[1])]
				if !ok {
					continue
				}
				for _, add := range addColumnRe.FindAllStringSubmatch(m[2], -1) {
					if w := strings.ToLower(strings.Trim(add[1], `"`)); !constraintWords[w] {
						t.columns[w] = true
					}
				}
			case dropTableRe.MatchString(stmt.text):
				m := dropTableRe.FindStringSubmatch(stmt.text)
				for _, name := range strings.Split(m[1], ",") {
					delete(tables, normalizeTable(name))
				}
			}
		}
	}

	exempt := tableSet(cfg.Exceptions)
	var violations []Violation
	for name, t := range tables {
		if exempt[name] || t.columns[column] {
			continue
		}
		violations = append(violations, Violation{
			File:    t.file,
			Line:    t.line,
			Column:  t.column,
			Check:   CheckTenantSchema,
			Message: fmt.Sprintf("table %s has no %s column", name, column),
		})
	}
	return violations, nil
}
