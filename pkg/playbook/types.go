package playbook

import "gopkg.in/yaml.v3"

// Document is a decoded playbook: the entries of the top-level sequence that
// carry a hosts key, in file order.
type Document struct {
	Plays []Play
}

// Play is one play of a playbook.
type Play struct {
	// Name is nil when the play has no name.
	Name  *string
	Hosts *yaml.Node
	Vars  []Var
	Tasks []Task
	Roles RolesField
}

// Var is one entry of a play's vars mapping. Value is the raw, unevaluated node.
type Var struct {
	Name  string
	Value *yaml.Node
}

// TaskKind discriminates the task variants.
type TaskKind int

const (
	TaskPlain TaskKind = iota
	TaskBlock
	TaskAssert
	TaskIncludeRole
)

func (k TaskKind) String() string {
	switch k {
	case TaskPlain:
		return "plain"
	case TaskBlock:
		return "block"
	case TaskAssert:
		return "assert"
	case TaskIncludeRole:
		return "include_role"
	default:
		return "unknown"
	}
}

// Task is one entry of a task list. Which of Block, That and Role is set
// depends on Kind.
type Task struct {
	Kind TaskKind
	// Name is nil when the task has no name.
	Name   *string
	Module string

	Block []Task   // TaskBlock
	That  []string // TaskAssert
	Role  RoleRef  // TaskIncludeRole
}

// Module spellings recognized for assertion and role-inclusion tasks.
var (
	AssertModules      = []string{"ansible.builtin.assert", "assert"}
	IncludeRoleModules = []string{"include_role", "ansible.builtin.include_role"}
)

// RoleRefKind discriminates the RoleRef variants.
type RoleRefKind int

const (
	// RolePlainName is a role given as a bare string.
	RolePlainName RoleRefKind = iota
	// RoleNamed is a role given as a mapping.
	RoleNamed
)

// RoleRef references a role. For RolePlainName, Name and Raw are the same
// string. For RoleNamed, Name comes from the mapping's name (or role) key and
// may be empty; Raw is the mapping in flow style.
type RoleRef struct {
	Kind RoleRefKind
	Name string
	Raw  string
}

// RolesKind discriminates the RolesField variants.
type RolesKind int

const (
	RolesEmpty RolesKind = iota
	RolesList
	RolesSingle
)

// RolesField is a play's roles key: absent, a list, or a single mapping.
type RolesField struct {
	Kind RolesKind
	Refs []RoleRef
}
