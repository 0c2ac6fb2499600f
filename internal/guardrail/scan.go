package guardrail

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// sourceRule is one source check: which SQL and which builder calls it flags.
type sourceRule struct {
	check    string
	allow    []string
	tables   map[string]bool
	patterns []opPattern
	// direct are builder calls naming the table in their first argument: Insert("t").
	direct map[string]bool
	// chained are calls on a receiver chain rooted at Table("t") or similar.
	chained  map[string]bool
	copyFrom bool
	message  func(op, table string) string
}

// tableSelectors pick the table for a chained builder call.
var tableSelectors = map[string]bool{"Table": true, "Model": true, "From": true, "Into": true}

func singleWriterRule(cfg SourceCheckConfig) sourceRule {
	return sourceRule{
		check:    CheckSingleWriter,
		allow:    cfg.Allow,
		tables:   tableSet(cfg.Tables),
		patterns: writePatterns,
		direct:   map[string]bool{"Insert": true, "InsertInto": true, "Upsert": true, "Merge": true, "Update": true},
		chained: map[string]bool{
			"Create": true, "CreateInBatches": true, "Save": true, "Insert": true,
			"Update": true, "Updates": true, "UpdateColumn": true, "UpdateColumns": true,
		},
		copyFrom: true,
		message: func(op, table string) string {
			return fmt.Sprintf("%s %s outside the posting engine", op, table)
		},
	}
}

func noDeleteRule(cfg SourceCheckConfig) sourceRule {
	return sourceRule{
		check:    CheckNoDelete,
		allow:    cfg.Allow,
		tables:   tableSet(cfg.Tables),
		patterns: deletePatterns,
		direct:   map[string]bool{"Delete": true, "DeleteFrom": true, "Truncate": true},
		chained:  map[string]bool{"Delete": true},
		message: func(op, table string) string {
			return fmt.Sprintf("%s %s: financial rows are never deleted", op, table)
		},
	}
}

func (r sourceRule) allowed(dir string) bool {
	for _, a := range r.allow {
		a = strings.Trim(filepath.ToSlash(filepath.Clean(a)), "/")
		if a == "" || a == "." {
			continue
		}
		if dir == a || strings.HasPrefix(dir, a+"/") {
			return true
		}
	}
	return false
}

// skipDir reports directories the scan never enters.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// scanSource parses every non-test Go file below root once and applies the rules.
// models maps type names to tables for ORM calls that take a struct instead of a name.
func scanSource(root string, rules []sourceRule, models map[string]string) ([]Violation, error) {
	byType := make(map[string]string, len(models))
	for name, table := range models {
		byType[strings.ToLower(name)] = normalizeTable(table)
	}
	var violations []Violation
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		var active []sourceRule
		for _, r := range rules {
			if !r.allowed(path.Dir(rel)) {
				active = append(active, r)
			}
		}
		if len(active) == 0 {
			slog.Debug("Skipping allow-listed file", slog.String("file", rel))
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, p, nil, parser.SkipObjectResolution)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", rel, err)
		}
		s := &fileScanner{fset: fset, file: rel, rules: active, consts: stringConsts(file), models: byType}
		s.scan(file)
		violations = append(violations, s.violations...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return violations, nil
}

// stringConsts collects constants with a constant string value, by name.
func stringConsts(file *ast.File) map[string]string {
	consts := map[string]string{}
	ast.Inspect(file, func(n ast.Node) bool {
		decl, ok := n.(*ast.GenDecl)
		if !ok || decl.Tok != token.CONST {
			return true
		}
		for _, spec := range decl.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != len(vs.Values) {
				continue
			}
			for i, name := range vs.Names {
				if leaves, ok := stringLeaves(vs.Values[i], consts); ok {
					consts[name.Name] = joinLeaves(leaves)
				}
			}
		}
		return true
	})
	return consts
}

// leaf is one operand of a constant string expression.
type leaf struct {
	value string
	pos   token.Pos
	lit   *ast.BasicLit // nil for a named constant
}

func stringLeaves(expr ast.Expr, consts map[string]string) ([]leaf, bool) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind != token.STRING {
			return nil, false
		}
		v, err := strconv.Unquote(e.Value)
		if err != nil {
			return nil, false
		}
		return []leaf{{value: v, pos: e.Pos(), lit: e}}, true
	case *ast.Ident:
		v, ok := consts[e.Name]
		if !ok {
			return nil, false
		}
		return []leaf{{value: v, pos: e.Pos()}}, true
	case *ast.ParenExpr:
		return stringLeaves(e.X, consts)
	case *ast.BinaryExpr:
		if e.Op != token.ADD {
			return nil, false
		}
		left, ok := stringLeaves(e.X, consts)
		if !ok {
			return nil, false
		}
		right, ok := stringLeaves(e.Y, consts)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	}
	return nil, false
}

func joinLeaves(leaves []leaf) string {
	var b strings.Builder
	for _, l := range leaves {
		b.WriteString(l.value)
	}
	return b.String()
}

type fileScanner struct {
	fset       *token.FileSet
	file       string
	rules      []sourceRule
	consts     map[string]string
	models     map[string]string
	violations []Violation
}

func (s *fileScanner) scan(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BinaryExpr:
			leaves, ok := stringLeaves(n, s.consts)
			if !ok {
				return true
			}
			s.checkConcat(leaves)
			for _, l := range leaves {
				if l.lit != nil {
					s.checkLiteral(l)
				}
			}
			return false
		case *ast.BasicLit:
			if n.Kind == token.STRING {
				if leaves, ok := stringLeaves(n, nil); ok {
					s.checkLiteral(leaves[0])
				}
			}
		case *ast.CallExpr:
			s.checkCall(n)
		}
		return true
	})
}

func (s *fileScanner) checkLiteral(l leaf) {
	for _, r := range s.rules {
		for _, op := range findOps(l.value, r.patterns, r.tables) {
			s.report(r, s.positionIn(l, op.Offset), op.Op, op.Table)
		}
	}
}

// checkConcat reports operations that only appear once the operands are joined.
// An operation inside a single operand is reported where that operand is written.
func (s *fileScanner) checkConcat(leaves []leaf) {
	joined := joinLeaves(leaves)
	starts := make([]int, len(leaves))
	offset := 0
	for i, l := range leaves {
		starts[i] = offset
		offset += len(l.value)
	}

	for _, r := range s.rules {
		for _, op := range findOps(joined, r.patterns, r.tables) {
			i := len(leaves) - 1
			for i > 0 && starts[i] > op.Offset {
				i--
			}
			if reportedAlone(leaves[i], op.Offset-starts[i], op, r) {
				continue
			}
			s.report(r, s.positionIn(leaves[i], op.Offset-starts[i]), op.Op, op.Table)
		}
	}
}

func reportedAlone(l leaf, offset int, op sqlOp, r sourceRule) bool {
	for _, own := range findOps(l.value, r.patterns, r.tables) {
		if own.Offset == offset && own.Table == op.Table && own.Op == op.Op {
			return true
		}
	}
	return false
}

// positionIn maps a byte offset inside a leaf's value to a source position. Raw
// strings keep their newlines, so the line moves with the offset.
func (s *fileScanner) positionIn(l leaf, offset int) token.Position {
	p := s.fset.Position(l.pos)
	if l.lit == nil {
		return p
	}
	if !strings.HasPrefix(l.lit.Value, "`") {
		p.Column += 1 + offset
		return p
	}
	prefix := l.value[:offset]
	if nl := strings.Count(prefix, "\n"); nl > 0 {
		p.Line += nl
		p.Column = offset - strings.LastIndex(prefix, "\n")
		return p
	}
	p.Column += 1 + offset
	return p
}

func callName(fun ast.Expr) (string, ast.Expr) {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name, nil
	case *ast.SelectorExpr:
		return f.Sel.Name, f.X
	case *ast.IndexExpr:
		return callName(f.X)
	}
	return "", nil
}

// stringArg resolves a literal or constant argument.
func (s *fileScanner) stringArg(expr ast.Expr) (string, bool) {
	leaves, ok := stringLeaves(expr, s.consts)
	if !ok {
		return "", false
	}
	return joinLeaves(leaves), true
}

// chainTable walks a builder chain such as db.Table("t").Where(...) to its table.
func (s *fileScanner) chainTable(expr ast.Expr) (string, bool) {
	for expr != nil {
		switch e := expr.(type) {
		case *ast.CallExpr:
			name, recv := callName(e.Fun)
			if tableSelectors[name] && len(e.Args) > 0 {
				if t, ok := s.stringArg(e.Args[0]); ok {
					return t, true
				}
				if t, ok := s.modelTable(e.Args[0]); ok {
					return t, true
				}
			}
			expr = recv
		case *ast.SelectorExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		default:
			return "", false
		}
	}
	return "", false
}

// modelTable resolves &T{}, T{}, []T{} and new(T) to the table mapped for T.
func (s *fileScanner) modelTable(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return s.modelTable(e.X)
		}
	case *ast.ParenExpr:
		return s.modelTable(e.X)
	case *ast.CompositeLit:
		return s.modelType(e.Type)
	case *ast.CallExpr:
		if id, ok := e.Fun.(*ast.Ident); ok && id.Name == "new" && len(e.Args) == 1 {
			return s.modelType(e.Args[0])
		}
	}
	return "", false
}

func (s *fileScanner) modelType(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		t, ok := s.models[strings.ToLower(e.Name)]
		return t, ok
	case *ast.SelectorExpr:
		t, ok := s.models[strings.ToLower(e.Sel.Name)]
		return t, ok
	case *ast.StarExpr:
		return s.modelType(e.X)
	case *ast.ArrayType:
		return s.modelType(e.Elt)
	}
	return "", false
}

// formatted rebuilds the string a fmt.Sprintf call produces when its arguments are
// constant. Other arguments become "?", which never reads as a table name.
func (s *fileScanner) formatted(call *ast.CallExpr) (format, out string, ok bool) {
	if len(call.Args) == 0 {
		return "", "", false
	}
	format, ok = s.stringArg(call.Args[0])
	if !ok {
		return "", "", false
	}
	args := call.Args[1:]
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(format) && strings.IndexByte("+-# 0123456789.*[]", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			b.WriteString(format[i:])
			break
		}
		verb := format[j]
		i = j
		if verb == '%' {
			b.WriteByte('%')
			continue
		}
		if len(args) == 0 {
			b.WriteString("?")
			continue
		}
		v, isConst := s.stringArg(args[0])
		args = args[1:]
		switch {
		case !isConst:
			b.WriteString("?")
		case verb == 'q':
			b.WriteString(strconv.Quote(v))
		default:
			b.WriteString(v)
		}
	}
	return format, b.String(), true
}

// identifierTable reads the table from pgx.Identifier{"schema", "table"}.
func (s *fileScanner) identifierTable(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok || len(lit.Elts) == 0 {
		return s.stringArg(expr)
	}
	return s.stringArg(lit.Elts[len(lit.Elts)-1])
}

func (s *fileScanner) checkCall(call *ast.CallExpr) {
	name, recv := callName(call.Fun)
	if name == "" {
		return
	}
	pos := s.fset.Position(call.Pos())
	if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
		pos = s.fset.Position(sel.Sel.Pos())
	}

	for _, r := range s.rules {
		if r.copyFrom && name == "CopyFrom" {
			for _, arg := range call.Args {
				if t, ok := s.identifierTable(arg); ok && r.tables[normalizeTable(t)] {
					s.report(r, pos, "CopyFrom() on", normalizeTable(t))
					break
				}
			}
			continue
		}
		if r.direct[name] && len(call.Args) > 0 {
			if t, ok := s.stringArg(call.Args[0]); ok && r.tables[normalizeTable(t)] {
				s.report(r, pos, name+"() on", normalizeTable(t))
				continue
			}
		}
		if r.chained[name] && len(call.Args) > 0 {
			if t, ok := s.modelTable(call.Args[0]); ok && r.tables[t] {
				s.report(r, pos, name+"() on", t)
				continue
			}
		}
		if r.chained[name] && recv != nil {
			if t, ok := s.chainTable(recv); ok && r.tables[normalizeTable(t)] {
				s.report(r, pos, name+"() on", normalizeTable(t))
			}
		}
	}

	if name == "Sprintf" && isIdent(recv, "fmt") {
		s.checkSprintf(call, pos)
	}
}

// checkSprintf reports operations that only exist once the format is filled in.
// Anything visible in the format alone is reported at the literal.
func (s *fileScanner) checkSprintf(call *ast.CallExpr, pos token.Position) {
	format, out, ok := s.formatted(call)
	if !ok {
		return
	}
	for _, r := range s.rules {
		seen := map[sqlOp]bool{}
		for _, op := range findOps(format, r.patterns, r.tables) {
			seen[sqlOp{Op: op.Op, Table: op.Table}] = true
		}
		for _, op := range findOps(out, r.patterns, r.tables) {
			if seen[sqlOp{Op: op.Op, Table: op.Table}] {
				continue
			}
			s.report(r, pos, op.Op, op.Table)
		}
	}
}

func isIdent(expr ast.Expr, name string) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == name
}

func (s *fileScanner) report(r sourceRule, pos token.Position, op, table string) {
	s.violations = append(s.violations, Violation{
		File:    s.file,
		Line:    pos.Line,
		Column:  pos.Column,
		Check:   r.check,
		Message: r.message(op, table),
	})
}
