package extract

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Selector keeps the plays matching a boolean expr-lang expression such as
//
//	"nginx" in roles && hosts != "all"
//
// The expression sees description, hosts, hosts_variable, mandatory, vars,
// tasks and roles. An empty expression keeps every play.
type Selector struct {
	source  string
	program *vm.Program
}

// NewSelector compiles expression.
func NewSelector(expression string) (*Selector, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return &Selector{}, nil
	}
	program, err := expr.Compile(expression, expr.Env(selectorEnv(NormalizedPlay{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile select expression %q: %w", expression, err)
	}
	return &Selector{source: expression, program: program}, nil
}

// Match reports whether p satisfies the expression.
func (s *Selector) Match(p NormalizedPlay) (bool, error) {
	if s == nil || s.program == nil {
		return true, nil
	}
	out, err := expr.Run(s.program, selectorEnv(p))
	if err != nil {
		return false, fmt.Errorf("eval select expression %q: %w", s.source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("select expression %q did not return bool (got %T)", s.source, out)
	}
	return ok, nil
}

// Filter returns the plays that match, preserving order.
func (s *Selector) Filter(plays []NormalizedPlay) ([]NormalizedPlay, error) {
	if s == nil || s.program == nil {
		return plays, nil
	}
	var kept []NormalizedPlay
	for _, p := range plays {
		ok, err := s.Match(p)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func selectorEnv(p NormalizedPlay) map[string]any {
	vars := make(map[string]string, len(p.VariablesTable))
	for _, v := range p.VariablesTable {
		vars[v.Name] = v.Value
	}
	return map[string]any{
		"description":    p.Description,
		"hosts":          p.Hosts,
		"hosts_variable": p.HostsVariable,
		"mandatory":      nonNil(p.MandatoryVariables),
		"vars":           vars,
		"tasks":          nonNil(p.Tasks),
		"roles":          nonNil(p.Roles),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
