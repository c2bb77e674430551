package view

// Command contains the information displayed for a definition. Commands
// lists the subcommands of an application definition.
type Command struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Synopsis    string     `json:"synopsis" yaml:"synopsis"`
	Arguments   []Argument `json:"arguments" yaml:"arguments"`
	Options     []Option   `json:"options" yaml:"options"`
	Commands    []Summary  `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Argument describes a declared positional argument
type Argument struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool     `json:"required" yaml:"required"`
	Array       bool     `json:"array" yaml:"array"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Completer   string   `json:"completer,omitempty" yaml:"completer,omitempty"`
}

// Option describes a declared option
type Option struct {
	Name        string   `json:"name" yaml:"name"`
	Shortcut    string   `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Value       string   `json:"value" yaml:"value"` // none, required or optional
	Array       bool     `json:"array" yaml:"array"`
	Negatable   bool     `json:"negatable" yaml:"negatable"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Completer   string   `json:"completer,omitempty" yaml:"completer,omitempty"`
}

// Summary is a one-line command entry
type Summary struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Binding is one argument or option value of a parsed command line. Set is
// false when the value is the declared default.
type Binding struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Set   bool   `json:"set" yaml:"set"`
}

// Input contains the bindings of a parsed command line
type Input struct {
	Command    string    `json:"command" yaml:"command"`
	Arguments  []Binding `json:"arguments" yaml:"arguments"`
	Options    []Binding `json:"options" yaml:"options"`
	Terminated bool      `json:"terminated" yaml:"terminated"`
	Normalized string    `json:"normalized" yaml:"normalized"` // re-parses to the same bindings
}
