// Package report renders the Markdown summary of a playbook.
package report

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ormasoftchile/autodoc/pkg/extract"
)

// reportTemplate lays out one section per play: description, hosts,
// mandatory variables, default variables, tasks and roles.
const reportTemplate = `# {{ .Name }}
{{ range .Plays }}
# Description
{{ .Description }}

## Hosts
{{ .Hosts }}
{{- if not (empty .HostsVariable) }}

Note: hosts depends from variable ` + "`{{ .HostsVariable }}`" + `.
{{- end }}

## Mandatory variables
{{ if .MandatoryVariables -}}
The following variables are necessary for this play:
{{ range .MandatoryVariables }}
- {{ . }}
{{- end }}
{{- else -}}
No mandatory variables found.
{{- end }}

## Default variables
{{ if .VariablesTable -}}
The following table lists the variables used in this play, along with their value.

{{ pipeTable .VariablesTable }}
{{- else -}}
No variables found.
{{- end }}

## Tasks
{{ if .Tasks -}}
The following tasks are defined in this play:
{{ range .Tasks }}
- {{ . }}
{{- end }}
{{- else -}}
No tasks found.
{{- end }}

## Roles
{{ if .Roles -}}
The following roles are used in this play:
{{ range .Roles }}
- {{ . }}
{{- end }}
{{- else -}}
No roles found.
{{- end }}
{{ end }}`

var tmpl = template.Must(template.New("report").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{"pipeTable": pipeTable}).
	Parse(reportTemplate))

type reportData struct {
	Name  string
	Plays []extract.NormalizedPlay
}

// Render writes the report for the playbook called name to w.
func Render(w io.Writer, name string, plays []extract.NormalizedPlay) error {
	if err := tmpl.Execute(w, reportData{Name: name, Plays: plays}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// RenderString returns the report as a string.
func RenderString(name string, plays []extract.NormalizedPlay) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, name, plays); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pipeTable renders the variables table in pipe-delimited Markdown.
func pipeTable(rows []extract.Variable) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Name", "Value"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.Name, r.Value})
	}
	return tw.RenderMarkdown()
}
