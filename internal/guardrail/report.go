package guardrail

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrViolations is returned by Run when at least one violation was found.
var ErrViolations = errors.New("guardrail violations found")

// Violation is one finding, positioned at the offending keyword or call.
type Violation struct {
	File    string // slash separated, relative to the root
	Line    int
	Column  int
	Check   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s", v.File, v.Line, v.Column, v.Check, v.Message)
}

// sortViolations orders findings and drops exact duplicates so reports are stable.
func sortViolations(vs []Violation) []Violation {
	sort.Slice(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Check != b.Check {
			return a.Check < b.Check
		}
		return a.Message < b.Message
	})
	out := vs[:0]
	for _, v := range vs {
		if len(out) > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// WriteReport prints one line per violation.
func WriteReport(w io.Writer, vs []Violation) error {
	for _, v := range vs {
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}
