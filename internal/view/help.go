package view

import (
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const helpText = `{{ with .Description }}{{ trim . }}

{{ end -}}
Usage:
  {{ .Synopsis }}
{{- if .Arguments }}

Arguments:
{{- range .Arguments }}
  {{ printf "%-*s" $.Width .Name }}  {{ trim .Description }}{{ with .Default }} [default: {{ display . }}]{{ end }}
{{- end }}
{{- end }}
{{- if .Options }}

Options:
{{- range .Options }}
  {{ printf "%-*s" $.Width (label .) }}  {{ trim .Description }}{{ with .Default }} [default: {{ display . }}]{{ end }}{{ if .Array }} (multiple values allowed){{ end }}{{ if .Negatable }} (negatable){{ end }}
{{- end }}
{{- end }}
{{- if .Commands }}

Commands:
{{- range .Commands }}
  {{ printf "%-*s" $.Width .Name }}  {{ trim .Description }}{{ with .Aliases }} [aliases: {{ join ", " . }}]{{ end }}
{{- end }}
{{- end }}
`

var helpTemplate = template.Must(template.New("help").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{
		"display": displayValue,
		"label":   optionLabel,
	}).
	Parse(helpText))

// Help writes plain-text usage for a definition, without styling
func Help(w io.Writer, data *Command) error {
	width := 0
	for _, a := range data.Arguments {
		width = max(width, len(a.Name))
	}
	for _, o := range data.Options {
		width = max(width, len(optionLabel(o)))
	}
	for _, c := range data.Commands {
		width = max(width, len(c.Name))
	}

	return helpTemplate.Execute(w, struct {
		*Command
		Width int
	}{Command: data, Width: width})
}
