package playbook

import "gopkg.in/yaml.v3"

// buildDocument folds the decoded tree into plays. Top-level entries that are
// not mappings or carry no hosts key are skipped.
func buildDocument(root *yaml.Node) *Document {
	doc := &Document{}
	top := resolve(root)
	if top != nil && top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = resolve(top.Content[0])
	}
	if !isSequence(top) {
		return doc
	}
	for _, entry := range top.Content {
		if !isMapping(entry) {
			continue
		}
		if _, ok := lookup(entry, "hosts"); !ok {
			continue
		}
		doc.Plays = append(doc.Plays, buildPlay(entry))
	}
	return doc
}

func buildPlay(n *yaml.Node) Play {
	var p Play
	p.Hosts, _ = lookup(n, "hosts")
	if v, ok := lookup(n, "name"); ok {
		if s, ok := scalarString(v); ok {
			p.Name = &s
		}
	}
	if v, ok := lookup(n, "vars"); ok {
		for _, kv := range pairs(v) {
			p.Vars = append(p.Vars, Var{Name: kv.key, Value: resolve(kv.value)})
		}
	}
	if v, ok := lookup(n, "tasks"); ok {
		p.Tasks = buildTasks(v)
	}
	if v, ok := lookup(n, "roles"); ok {
		p.Roles = buildRoles(v)
	}
	return p
}

// buildTasks decodes a task list. Entries that are not mappings become
// unnamed plain tasks so that positions are preserved.
func buildTasks(n *yaml.Node) []Task {
	n = resolve(n)
	if !isSequence(n) {
		return nil
	}
	tasks := make([]Task, 0, len(n.Content))
	for _, item := range n.Content {
		tasks = append(tasks, buildTask(item))
	}
	return tasks
}

func buildTask(n *yaml.Node) Task {
	var t Task
	if !isMapping(n) {
		return t
	}
	if v, ok := lookup(n, "name"); ok {
		if s, ok := scalarString(v); ok {
			t.Name = &s
		}
	}
	if v, ok := lookup(n, "block"); ok {
		t.Kind = TaskBlock
		t.Module = "block"
		t.Block = buildTasks(v)
		return t
	}
	for _, mod := range AssertModules {
		if v, ok := lookup(n, mod); ok {
			t.Kind = TaskAssert
			t.Module = mod
			t.That = conditions(v)
			return t
		}
	}
	for _, mod := range IncludeRoleModules {
		if v, ok := lookup(n, mod); ok {
			t.Kind = TaskIncludeRole
			t.Module = mod
			t.Role = includedRole(v)
			return t
		}
	}
	t.Kind = TaskPlain
	for _, kv := range pairs(n) {
		if !taskKeywords[kv.key] {
			t.Module = kv.key
			break
		}
	}
	return t
}

// taskKeywords are task-level keys that never name the module.
var taskKeywords = map[string]bool{
	"name": true, "when": true, "tags": true, "register": true, "notify": true,
	"become": true, "become_user": true, "vars": true, "loop": true,
	"with_items": true, "ignore_errors": true, "changed_when": true,
	"failed_when": true, "delegate_to": true, "run_once": true, "until": true,
	"retries": true, "delay": true, "environment": true, "no_log": true,
	"args": true, "rescue": true, "always": true,
}

// conditions extracts the that list of an assert task. A single string is
// accepted as a one-element list.
func conditions(assert *yaml.Node) []string {
	that, ok := lookup(assert, "that")
	if !ok {
		return nil
	}
	if s, ok := scalarString(that); ok {
		return []string{s}
	}
	if !isSequence(that) {
		return nil
	}
	var out []string
	for _, c := range that.Content {
		if s, ok := scalarString(c); ok {
			out = append(out, s)
		}
	}
	return out
}

// includedRole reads the argument of an include_role task: a bare role name
// or a mapping with a name key.
func includedRole(v *yaml.Node) RoleRef {
	if s, ok := scalarString(v); ok {
		return RoleRef{Kind: RolePlainName, Name: s, Raw: s}
	}
	ref := RoleRef{Kind: RoleNamed, Raw: Text(v)}
	if name, ok := lookup(v, "name"); ok {
		ref.Name, _ = scalarString(name)
	}
	return ref
}

func buildRoles(n *yaml.Node) RolesField {
	n = resolve(n)
	switch {
	case isSequence(n):
		f := RolesField{Kind: RolesList}
		for _, item := range n.Content {
			f.Refs = append(f.Refs, roleEntry(item))
		}
		return f
	case isMapping(n):
		return RolesField{Kind: RolesSingle, Refs: []RoleRef{roleEntry(n)}}
	default:
		return RolesField{Kind: RolesEmpty}
	}
}

// roleEntry reads one role reference from a roles field. Mappings are named
// by their name key, falling back to role.
func roleEntry(n *yaml.Node) RoleRef {
	if s, ok := scalarString(n); ok {
		return RoleRef{Kind: RolePlainName, Name: s, Raw: s}
	}
	ref := RoleRef{Kind: RoleNamed, Raw: Text(n)}
	for _, key := range []string{"name", "role"} {
		if v, ok := lookup(n, key); ok {
			ref.Name, _ = scalarString(v)
			break
		}
	}
	return ref
}
