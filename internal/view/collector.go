// Package view collects and renders definitions and parsed command lines.
package view

import (
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/input"
)

// CollectCommand gathers the displayable information of a definition
func CollectCommand(def *definition.Definition, description string, commands []Summary) *Command {
	data := &Command{
		Name:        def.Name(),
		Description: description,
		Synopsis:    strings.TrimSpace(def.Name() + " " + def.Synopsis(false)),
		Arguments:   make([]Argument, 0, len(def.Arguments())),
		Options:     make([]Option, 0, len(def.Options())),
		Commands:    commands,
	}

	for _, a := range def.Arguments() {
		data.Arguments = append(data.Arguments, Argument{
			Name:        a.Name(),
			Description: a.Description(),
			Required:    a.IsRequired(),
			Array:       a.IsArray(),
			Default:     displayDefault(a.Default()),
			Suggestions: a.Suggestions(),
			Completer:   a.Completion(),
		})
	}

	for _, o := range def.Options() {
		data.Options = append(data.Options, Option{
			Name:        o.Name(),
			Shortcut:    o.Shortcut(),
			Description: o.Description(),
			Value:       valueMode(o),
			Array:       o.IsArray(),
			Negatable:   def.HasNegation(definition.NegationPrefix + o.Name()),
			Default:     displayDefault(o.Default()),
			Suggestions: o.Suggestions(),
			Completer:   o.Completion(),
		})
	}

	return data
}

// CollectInput gathers the bindings of a parsed command line, defaults
// included, in declaration order
func CollectInput(in *input.Input) *Input {
	def := in.Definition()
	data := &Input{
		Command:    def.Name(),
		Arguments:  make([]Binding, 0, len(def.Arguments())),
		Options:    make([]Binding, 0, len(def.Options())),
		Terminated: in.Terminated(),
		Normalized: in.String(),
	}

	for _, a := range def.Arguments() {
		v, _ := in.Argument(a.Name())
		data.Arguments = append(data.Arguments, Binding{Name: a.Name(), Value: v, Set: in.IsArgumentSet(a.Name())})
	}
	for _, o := range def.Options() {
		v, _ := in.Option(o.Name())
		data.Options = append(data.Options, Binding{Name: o.Name(), Value: v, Set: in.IsOptionSet(o.Name())})
	}

	return data
}

func valueMode(o *definition.Option) string {
	switch {
	case o.IsValueRequired():
		return "required"
	case o.IsValueOptional():
		return "optional"
	default:
		return "none"
	}
}

// displayDefault drops the zero defaults that carry no information
func displayDefault(v any) any {
	switch d := v.(type) {
	case bool:
		if !d {
			return nil
		}
	case []string:
		if len(d) == 0 {
			return nil
		}
	}
	return v
}
