package config

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/completion"
	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
)

// CommandArgument is the name of the argument holding the command in
// applications that declare commands
const CommandArgument = "command"

// CommandsCompleter is the completion hint attached to the command argument
const CommandsCompleter = "commands"

// Value modes accepted by OptionConfig.Value
const (
	ValueNone     = "none"
	ValueRequired = "required"
	ValueOptional = "optional"
)

// Manifest describes an application's global options and commands
type Manifest struct {
	Name        string           `koanf:"name" jsonschema:"required,minLength=1,description=Program name as typed on the command line"`
	Description string           `koanf:"description" jsonschema:"description=Short description of the program"`
	Options     []OptionConfig   `koanf:"options" jsonschema:"description=Global options accepted before and after the command"`
	Arguments   []ArgumentConfig `koanf:"arguments" jsonschema:"description=Positional arguments of a program without commands"`
	Commands    []CommandConfig  `koanf:"commands" jsonschema:"description=Commands; the first positional token selects one"`
}

// CommandConfig declares one command
type CommandConfig struct {
	Name        string           `koanf:"name" jsonschema:"required,minLength=1,description=Command name"`
	Aliases     []string         `koanf:"aliases" jsonschema:"description=Alternative names for the command"`
	Description string           `koanf:"description" jsonschema:"description=Short description shown in completion and help"`
	Arguments   []ArgumentConfig `koanf:"arguments" jsonschema:"description=Positional arguments in order"`
	Options     []OptionConfig   `koanf:"options" jsonschema:"description=Options specific to this command"`
}

// ArgumentConfig declares a positional argument
type ArgumentConfig struct {
	Name        string   `koanf:"name" jsonschema:"required,minLength=1,description=Argument name"`
	Description string   `koanf:"description" jsonschema:"description=Help text"`
	Required    bool     `koanf:"required" jsonschema:"description=The argument must be given,default=false"`
	Array       bool     `koanf:"array" jsonschema:"description=The argument absorbs every remaining positional token,default=false"`
	Default     any      `koanf:"default" jsonschema:"description=Default value (a string or a list of strings for arrays)"`
	Suggestions []string `koanf:"suggestions" jsonschema:"description=Values offered by completion"`
	Complete    string   `koanf:"complete" jsonschema:"description=Dynamic completer: files dirs executables commands or exec:<command>"`
}

// OptionConfig declares an option
type OptionConfig struct {
	Name        string   `koanf:"name" jsonschema:"required,minLength=1,description=Long option name without the leading dashes"`
	Shortcut    string   `koanf:"shortcut" jsonschema:"maxLength=1,description=Single character shortcut"`
	Description string   `koanf:"description" jsonschema:"description=Help text"`
	Value       string   `koanf:"value" jsonschema:"enum=none,enum=required,enum=optional,default=none,description=Whether the option takes a value"`
	Array       bool     `koanf:"array" jsonschema:"description=Each occurrence appends a value,default=false"`
	Default     any      `koanf:"default" jsonschema:"description=Default value"`
	Suggestions []string `koanf:"suggestions" jsonschema:"description=Values offered by completion"`
	Complete    string   `koanf:"complete" jsonschema:"description=Dynamic completer: files dirs executables commands or exec:<command>"`
}

// HasCommands reports whether the first positional token selects a command
func (m *Manifest) HasCommands() bool {
	return len(m.Commands) > 0
}

// Command returns the command declared with name or with name as an alias
func (m *Manifest) Command(name string) (*CommandConfig, bool) {
	for i := range m.Commands {
		c := &m.Commands[i]
		if c.Name == name {
			return c, true
		}
		for _, alias := range c.Aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return nil, false
}

// Application builds the program-level definition. With commands it holds
// the global options and a required command argument; without, it holds
// the global options and the top-level arguments.
func (m *Manifest) Application() (*definition.Definition, error) {
	options, err := buildOptions(m.Options)
	if err != nil {
		return nil, err
	}

	if !m.HasCommands() {
		arguments, err := buildArguments(m.Arguments)
		if err != nil {
			return nil, err
		}
		return definition.New(m.Name, arguments, options)
	}

	command, err := m.commandArgument()
	if err != nil {
		return nil, err
	}
	return definition.New(m.Name, []*definition.Argument{command}, options)
}

// Definition builds the definition of a command: the global options, the
// command argument, then the command's own arguments and options. name may
// be an alias.
func (m *Manifest) Definition(name string) (*definition.Definition, error) {
	cmd, ok := m.Command(name)
	if !ok {
		return nil, derrors.NewNotFoundError("command", fmt.Sprintf("command %q is not defined", name))
	}

	options, err := buildOptions(append(append([]OptionConfig(nil), m.Options...), cmd.Options...))
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", cmd.Name, err)
	}

	command, err := m.commandArgument()
	if err != nil {
		return nil, err
	}
	own, err := buildArguments(cmd.Arguments)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", cmd.Name, err)
	}

	return definition.New(m.Name+" "+cmd.Name, append([]*definition.Argument{command}, own...), options)
}

// CommandNames returns every command name and alias in declaration order
func (m *Manifest) CommandNames() []string {
	var names []string
	for _, c := range m.Commands {
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
	}
	return names
}

// ExecCommands returns the distinct commands of the "exec:" completion
// hints, trimmed, in declaration order
func (m *Manifest) ExecCommands() []string {
	var commands []string
	seen := make(map[string]bool)
	add := func(hint string) {
		command, ok := strings.CutPrefix(hint, completion.ExecPrefix)
		command = strings.TrimSpace(command)
		if !ok || command == "" || seen[command] {
			return
		}
		seen[command] = true
		commands = append(commands, command)
	}

	collect := func(arguments []ArgumentConfig, options []OptionConfig) {
		for _, a := range arguments {
			add(a.Complete)
		}
		for _, o := range options {
			add(o.Complete)
		}
	}

	collect(m.Arguments, m.Options)
	for _, c := range m.Commands {
		collect(c.Arguments, c.Options)
	}
	return commands
}

func (m *Manifest) commandArgument() (*definition.Argument, error) {
	return definition.NewArgument(CommandArgument, definition.ArgumentRequired, "The command to run", nil,
		definition.Complete(CommandsCompleter))
}

func buildArguments(configs []ArgumentConfig) ([]*definition.Argument, error) {
	arguments := make([]*definition.Argument, 0, len(configs))
	for _, c := range configs {
		mode := definition.ArgumentOptional
		if c.Required {
			mode = definition.ArgumentRequired
		}
		if c.Array {
			mode |= definition.ArgumentIsArray
		}

		def, err := normalizeDefault(c.Name, c.Default, c.Array)
		if err != nil {
			return nil, err
		}

		a, err := definition.NewArgument(c.Name, mode, c.Description, def, attrs(c.Suggestions, c.Complete)...)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, a)
	}
	return arguments, nil
}

func buildOptions(configs []OptionConfig) ([]*definition.Option, error) {
	options := make([]*definition.Option, 0, len(configs))
	for _, c := range configs {
		var mode definition.ValueMode
		switch strings.ToLower(c.Value) {
		case "", ValueNone:
			mode = definition.ValueNone
		case ValueRequired:
			mode = definition.ValueRequired
		case ValueOptional:
			mode = definition.ValueOptional
		default:
			return nil, derrors.NewDefinitionError(c.Name, fmt.Sprintf("option %q: unknown value mode %q (expected none, required or optional)", c.Name, c.Value))
		}
		if c.Array {
			mode |= definition.ValueIsArray
		}

		var def any
		if mode&definition.ValueNone != 0 {
			def = c.Default
		} else {
			var err error
			if def, err = normalizeDefault(c.Name, c.Default, c.Array); err != nil {
				return nil, err
			}
		}

		o, err := definition.NewOption(c.Name, c.Shortcut, mode, c.Description, def, attrs(c.Suggestions, c.Complete)...)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, nil
}

func attrs(suggestions []string, complete string) []definition.Attr {
	var out []definition.Attr
	if len(suggestions) > 0 {
		out = append(out, definition.Suggest(suggestions...))
	}
	if complete != "" {
		out = append(out, definition.Complete(complete))
	}
	return out
}

// normalizeDefault converts decoded manifest values (numbers, generic
// lists) to the string forms definitions accept
func normalizeDefault(name string, v any, array bool) (any, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return d, nil
	case []any:
		if !array {
			return nil, derrors.NewDefinitionError(name, fmt.Sprintf("the default value of %q must be a string", name))
		}
		out := make([]string, 0, len(d))
		for _, item := range d {
			switch item.(type) {
			case map[string]any, []any:
				return nil, derrors.NewDefinitionError(name, fmt.Sprintf("the default value of %q must be a list of strings", name))
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	case map[string]any:
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("the default value of %q cannot be a mapping", name))
	default:
		if array {
			return []string{fmt.Sprint(d)}, nil
		}
		return fmt.Sprint(d), nil
	}
}
