package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormasoftchile/autodoc/pkg/extract"
	"github.com/ormasoftchile/autodoc/pkg/playbook"
)

const fixture = "../../testdata/site.yml"

func TestRender_NoPlays(t *testing.T) {
	out, err := RenderString("empty.yml", nil)
	require.NoError(t, err)
	assert.Equal(t, "# empty.yml\n", out)
}

func TestRender_EmptyPlay(t *testing.T) {
	out, err := RenderString("site.yml", []extract.NormalizedPlay{
		{Description: extract.NoDescription, Hosts: "all"},
	})
	require.NoError(t, err)

	want := `# site.yml

# Description
No description found

## Hosts
all

## Mandatory variables
No mandatory variables found.

## Default variables
No variables found.

## Tasks
No tasks found.

## Roles
No roles found.
`
	assert.Equal(t, want, out)
}

func TestRender_FullPlay(t *testing.T) {
	out, err := RenderString("site.yml", []extract.NormalizedPlay{{
		Description:        "Configure web",
		Hosts:              "{{ target_group }}",
		HostsVariable:      "target_group",
		MandatoryVariables: []string{"db_host", "db_port"},
		VariablesTable: []extract.Variable{
			{Name: "retries", Value: "3"},
			{Name: "timeout", Value: "30"},
		},
		Tasks: []string{"Install", "Start"},
		Roles: []string{"web", "db", "monitoring"},
	}})
	require.NoError(t, err)

	for _, want := range []string{
		"# site.yml\n\n# Description\nConfigure web\n",
		"## Hosts\n{{ target_group }}\n\nNote: hosts depends from variable `target_group`.\n\n## Mandatory variables",
		"The following variables are necessary for this play:\n\n- db_host\n- db_port\n\n## Default variables",
		"The following table lists the variables used in this play, along with their value.\n\n|",
		"| retries | 3 |",
		"| timeout | 30 |",
		"The following tasks are defined in this play:\n\n- Install\n- Start\n\n## Roles",
		"The following roles are used in this play:\n\n- web\n- db\n- monitoring\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "- monitoring\n"), "unexpected tail:\n%s", out)
	assert.Less(t, strings.Index(out, "| retries"), strings.Index(out, "| timeout"))
}

func TestRender_ValuesVerbatim(t *testing.T) {
	out, err := RenderString("p.yml", []extract.NormalizedPlay{{
		Description: "  web  ",
		Hosts:       " all ",
	}})
	require.NoError(t, err)
	assert.Contains(t, out, "# Description\n  web  \n\n## Hosts\n all \n\n## Mandatory")
}

func TestRender_PlaysInOrder(t *testing.T) {
	out, err := RenderString("multi.yml", []extract.NormalizedPlay{
		{Description: "first", Hosts: "a"},
		{Description: "second", Hosts: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "# Description\n"))
	assert.Contains(t, out, "No roles found.\n\n# Description\nsecond\n")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestRender_TableEscapesPipes(t *testing.T) {
	out, err := RenderString("p.yml", []extract.NormalizedPlay{{
		Hosts:          "all",
		VariablesTable: []extract.Variable{{Name: "filter", Value: "a | b"}},
	}})
	require.NoError(t, err)
	assert.Contains(t, out, `a \| b`)
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		playbook, dir, want string
	}{
		{"site.yml", "", "README_site_.md"},
		{"playbooks/deploy.yaml", "", "README_deploy_.md"},
		{"archive.tar.yml", "", "README_archive.tar_.md"},
		{"noext", "", "README_noext_.md"},
		{".hidden", "", "README_.hidden_.md"},
		{"site.yml", "docs", filepath.Join("docs", "README_site_.md")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultOutputPath(tt.playbook, tt.dir), tt.playbook)
	}
}

func TestGenerate_Fixture(t *testing.T) {
	out := filepath.Join(t.TempDir(), "README.md")
	res, err := Generate(Options{PlaybookPath: fixture, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
	require.Len(t, res.Plays, 2)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	body := string(data)

	assert.True(t, strings.HasPrefix(body, "# site.yml\n"))
	assert.Contains(t, body, "Note: hosts depends from variable `target_group`.")
	assert.Contains(t, body, "- cert_path\n- http_port\n- target_group\n")
	assert.Contains(t, body, "| admin_password | ENCRYPTED |")
	assert.NotContains(t, body, "ANSIBLE_VAULT")
	assert.NotContains(t, body, "deep_var")
	assert.Contains(t, body, "- common\n- {role: nginx, tags: [web]}\n- monitoring\n")
	assert.Contains(t, body, "# Description\nNo description found\n\n## Hosts\ndbservers\n")
	assert.Contains(t, body, "- postgres\n")
}

func TestGenerate_Idempotent(t *testing.T) {
	out := filepath.Join(t.TempDir(), "README.md")
	_, err := Generate(Options{PlaybookPath: fixture, OutputPath: out})
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = Generate(Options{PlaybookPath: fixture, OutputPath: out})
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestGenerate_DefaultPathInDir(t *testing.T) {
	dir := t.TempDir()
	res, err := Generate(Options{PlaybookPath: fixture, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README_site_.md"), res.OutputPath)
	_, err = os.Stat(res.OutputPath)
	assert.NoError(t, err)
}

func TestGenerate_Select(t *testing.T) {
	out := filepath.Join(t.TempDir(), "README.md")
	res, err := Generate(Options{PlaybookPath: fixture, OutputPath: out, Select: `hosts == "dbservers"`})
	require.NoError(t, err)
	require.Len(t, res.Plays, 1)
	assert.Equal(t, "dbservers", res.Plays[0].Hosts)
}

func TestGenerate_BadSelectWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "README.md")
	_, err := Generate(Options{PlaybookPath: fixture, OutputPath: out, Select: `roles +`})
	require.Error(t, err)
	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Generate(Options{PlaybookPath: filepath.Join(dir, "missing.yml")})
	var ioErr *playbook.IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "read", ioErr.Op)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("- hosts: {\n"), 0o644))
	_, err = Generate(Options{PlaybookPath: bad, OutputDir: dir})
	var perr *playbook.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)

	_, err = Generate(Options{PlaybookPath: fixture, OutputPath: filepath.Join(dir, "no", "such", "dir", "out.md")})
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "write", ioErr.Op)
}
