// Package extract derives the reporting model of each play: description,
// hosts, the variable behind a templated hosts expression, variables asserted
// as defined, default variables, task names and referenced roles.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ormasoftchile/autodoc/pkg/playbook"
)

// NoDescription is the description of a play without a name.
const NoDescription = "No description found"

// NormalizedPlay is the reporting model of one play. It is built once by
// ExtractPlay and not modified afterwards.
type NormalizedPlay struct {
	Description string
	Hosts       string
	// HostsVariable is empty when hosts holds no templated reference.
	HostsVariable string
	// MandatoryVariables is a set, kept sorted.
	MandatoryVariables []string
	VariablesTable     []Variable
	Tasks              []string
	Roles              []string
}

// Variable is one row of a play's default-variables table.
type Variable struct {
	Name  string
	Value string
}

// Extract builds the reporting model of every play in doc, in order.
func Extract(doc *playbook.Document) []NormalizedPlay {
	if doc == nil {
		return nil
	}
	plays := make([]NormalizedPlay, 0, len(doc.Plays))
	for _, p := range doc.Plays {
		plays = append(plays, ExtractPlay(p))
	}
	return plays
}

// ExtractPlay builds the reporting model of a single play.
func ExtractPlay(p playbook.Play) NormalizedPlay {
	np := NormalizedPlay{
		Description:        NoDescription,
		Hosts:              playbook.Text(p.Hosts),
		HostsVariable:      HostsVariable(p),
		MandatoryVariables: MandatoryVariables(p.Tasks),
		VariablesTable:     VariablesTable(p.Vars),
		Tasks:              TaskNames(p.Tasks),
		Roles:              Roles(p),
	}
	if p.Name != nil {
		np.Description = *p.Name
	}
	return np
}

var templateRef = regexp.MustCompile(`\{\{(.*?)\}\}`)

// HostsVariable returns the trimmed inner text of the first {{ }} reference
// in a string hosts value, or "" if there is none.
func HostsVariable(p playbook.Play) string {
	if !playbook.IsString(p.Hosts) {
		return ""
	}
	hosts := playbook.Text(p.Hosts)
	if !strings.Contains(hosts, "{{") || !strings.Contains(hosts, "}}") {
		return ""
	}
	m := templateRef.FindStringSubmatch(hosts)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// identifiers may use any Unicode letter or digit
var definedCheck = regexp.MustCompile(`([\p{L}\p{N}_]+)\s+is\s+defined`)

// MandatoryVariables collects the identifiers tested with "is defined" by
// assert tasks, looking at top-level tasks and the tasks of top-level blocks.
// Blocks nested inside blocks are not searched.
func MandatoryVariables(tasks []playbook.Task) []string {
	set := make(map[string]struct{})
	scan := func(t playbook.Task) {
		if t.Kind != playbook.TaskAssert {
			return
		}
		for _, cond := range t.That {
			for _, m := range definedCheck.FindAllStringSubmatch(cond, -1) {
				set[m[1]] = struct{}{}
			}
		}
	}
	for _, t := range tasks {
		if t.Kind == playbook.TaskBlock {
			for _, bt := range t.Block {
				scan(bt)
			}
			continue
		}
		scan(t)
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// VariablesTable lists vars in declaration order with their raw values.
func VariablesTable(vars []playbook.Var) []Variable {
	if len(vars) == 0 {
		return nil
	}
	rows := make([]Variable, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, Variable{Name: v.Name, Value: playbook.Text(v.Value)})
	}
	return rows
}

// TaskNames returns the names of the named top-level tasks.
func TaskNames(tasks []playbook.Task) []string {
	var names []string
	for _, t := range tasks {
		if t.Name != nil {
			names = append(names, *t.Name)
		}
	}
	return names
}

// Roles lists the roles from the play's roles field followed by the roles
// pulled in by top-level include_role tasks. Duplicates are kept.
func Roles(p playbook.Play) []string {
	var roles []string
	switch p.Roles.Kind {
	case playbook.RolesList:
		for _, ref := range p.Roles.Refs {
			roles = append(roles, ref.Raw)
		}
	case playbook.RolesSingle:
		for _, ref := range p.Roles.Refs {
			if ref.Name != "" {
				roles = append(roles, ref.Name)
			}
		}
	case playbook.RolesEmpty:
	}
	for _, t := range p.Tasks {
		if t.Kind != playbook.TaskIncludeRole {
			continue
		}
		if t.Role.Name != "" {
			roles = append(roles, t.Role.Name)
		}
	}
	return roles
}
