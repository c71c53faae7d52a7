package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selectPlays = []NormalizedPlay{
	{Description: "web", Hosts: "webservers", Roles: []string{"nginx", "common"}, Tasks: []string{"install"}},
	{Description: "db", Hosts: "{{ db_group }}", HostsVariable: "db_group",
		VariablesTable: []Variable{{Name: "port", Value: "5432"}}},
	{Description: "noop", Hosts: "all"},
}

func descriptions(plays []NormalizedPlay) []string {
	var out []string
	for _, p := range plays {
		out = append(out, p.Description)
	}
	return out
}

func TestSelector_Filter(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"", []string{"web", "db", "noop"}},
		{`"nginx" in roles`, []string{"web"}},
		{`hosts_variable != ""`, []string{"db"}},
		{`vars["port"] == "5432"`, []string{"db"}},
		{`len(tasks) == 0 && len(roles) == 0`, []string{"db", "noop"}},
		{`hosts startsWith "web" || description == "noop"`, []string{"web", "noop"}},
		{`len(mandatory) > 0`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			sel, err := NewSelector(tt.expr)
			require.NoError(t, err)
			got, err := sel.Filter(selectPlays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, descriptions(got))
		})
	}
}

func TestSelector_CompileErrors(t *testing.T) {
	for _, expr := range []string{
		`hosts ==`,
		`hosts`,       // not a bool
		`unknown > 1`, // unknown variable
	} {
		_, err := NewSelector(expr)
		assert.Error(t, err, expr)
	}
}

func TestSelector_NilMatchesEverything(t *testing.T) {
	var sel *Selector
	ok, err := sel.Match(NormalizedPlay{})
	require.NoError(t, err)
	assert.True(t, ok)
}
