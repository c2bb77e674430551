// Package definition declares the arguments and options a command accepts.
//
// A Definition is built once per command and never modified afterwards, so
// concurrent parses may share it. Its lookup tables (shortcut index,
// negation index, sorted name index, closest-name memo) are owned by the
// definition itself.
package definition

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/tidwall/btree"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LongName is an entry of the sorted long-name index
type LongName struct {
	// Name is what follows "--" on the command line
	Name   string
	Option *Option
	// Negated is set for the "no-" form of a boolean option
	Negated bool
}

// Definition is the immutable catalog of a command's arguments and options
type Definition struct {
	name string

	arguments     []*Argument
	argumentIndex map[string]int
	requiredCount int

	options   *orderedmap.OrderedMap[string, *Option]
	longNames *btree.Map[string, LongName]
	shortcuts map[string]string
	negations map[string]string

	suggestMu   sync.Mutex
	suggestMemo map[string]string
}

// New builds a definition for the named command. name may be empty for
// definitions that do not belong to a command; it is only used in messages.
func New(name string, arguments []*Argument, options []*Option) (*Definition, error) {
	d := &Definition{
		name:          name,
		argumentIndex: make(map[string]int),
		options:       orderedmap.New[string, *Option](),
		longNames:     btree.NewMap[string, LongName](0),
		shortcuts:     make(map[string]string),
		negations:     make(map[string]string),
		suggestMemo:   make(map[string]string),
	}

	for _, a := range arguments {
		if err := d.addArgument(a); err != nil {
			return nil, err
		}
	}
	for _, o := range options {
		if err := d.addOption(o); err != nil {
			return nil, err
		}
	}
	d.indexNegations()

	return d, nil
}

func (d *Definition) addArgument(a *Argument) error {
	if a == nil {
		return derrors.NewDefinitionError("", "argument cannot be nil")
	}
	if _, exists := d.argumentIndex[a.name]; exists {
		return derrors.NewDefinitionError(a.name, fmt.Sprintf("an argument with name %q already exists", a.name))
	}

	if n := len(d.arguments); n > 0 {
		last := d.arguments[n-1]
		if last.IsArray() {
			return derrors.NewDefinitionError(a.name, fmt.Sprintf("cannot add argument %q after array argument %q", a.name, last.name))
		}
		if a.IsRequired() && !last.IsRequired() {
			return derrors.NewDefinitionError(a.name, fmt.Sprintf("cannot add required argument %q after optional argument %q", a.name, last.name))
		}
	}

	d.argumentIndex[a.name] = len(d.arguments)
	d.arguments = append(d.arguments, a)
	if a.IsRequired() {
		d.requiredCount++
	}
	return nil
}

func (d *Definition) addOption(o *Option) error {
	if o == nil {
		return derrors.NewDefinitionError("", "option cannot be nil")
	}
	if existing, ok := d.options.Get(o.name); ok {
		if existing.Equals(o) {
			return nil
		}
		return derrors.NewDefinitionError(o.name, fmt.Sprintf("an option named %q already exists", o.name))
	}
	if o.shortcut != "" {
		if owner, ok := d.shortcuts[o.shortcut]; ok {
			return derrors.NewDefinitionError(o.name, fmt.Sprintf("an option with shortcut %q already exists (%q)", o.shortcut, owner))
		}
		d.shortcuts[o.shortcut] = o.name
	}

	d.options.Set(o.name, o)
	d.longNames.Set(o.name, LongName{Name: o.name, Option: o})
	return nil
}

// indexNegations exposes --no-name for every boolean option whose negated
// name is not itself a declared option.
func (d *Definition) indexNegations() {
	for pair := d.options.Oldest(); pair != nil; pair = pair.Next() {
		o := pair.Value
		if !o.IsNegatable() {
			continue
		}
		negated := NegationPrefix + o.name
		if _, declared := d.options.Get(negated); declared {
			continue
		}
		d.negations[negated] = o.name
		d.longNames.Set(negated, LongName{Name: negated, Option: o, Negated: true})
	}
}

// Name returns the command this definition belongs to
func (d *Definition) Name() string { return d.name }

// Arguments returns the arguments in declaration order
func (d *Definition) Arguments() []*Argument {
	return append([]*Argument(nil), d.arguments...)
}

// Argument returns the named argument
func (d *Definition) Argument(name string) (*Argument, bool) {
	i, ok := d.argumentIndex[name]
	if !ok {
		return nil, false
	}
	return d.arguments[i], true
}

// ArgumentAt returns the argument at a 0-based position
func (d *Definition) ArgumentAt(pos int) (*Argument, bool) {
	if pos < 0 || pos >= len(d.arguments) {
		return nil, false
	}
	return d.arguments[pos], true
}

// HasArgument reports whether the named argument is declared
func (d *Definition) HasArgument(name string) bool {
	_, ok := d.argumentIndex[name]
	return ok
}

// ArgumentCount returns the number of positional slots, or -1 when the
// last argument absorbs every remaining token
func (d *Definition) ArgumentCount() int {
	if n := len(d.arguments); n > 0 && d.arguments[n-1].IsArray() {
		return -1
	}
	return len(d.arguments)
}

// RequiredArgumentCount returns the number of required arguments
func (d *Definition) RequiredArgumentCount() int { return d.requiredCount }

// ArgumentDefaults returns the default value of every argument
func (d *Definition) ArgumentDefaults() map[string]any {
	out := make(map[string]any, len(d.arguments))
	for _, a := range d.arguments {
		out[a.name] = a.Default()
	}
	return out
}

// Options returns the options in declaration order
func (d *Definition) Options() []*Option {
	out := make([]*Option, 0, d.options.Len())
	for pair := d.options.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Option returns the named option
func (d *Definition) Option(name string) (*Option, bool) {
	return d.options.Get(name)
}

// HasOption reports whether the named option is declared
func (d *Definition) HasOption(name string) bool {
	_, ok := d.options.Get(name)
	return ok
}

// OptionDefaults returns the default value of every option
func (d *Definition) OptionDefaults() map[string]any {
	out := make(map[string]any, d.options.Len())
	for pair := d.options.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.Default()
	}
	return out
}

// HasShortcut reports whether a shortcut is declared
func (d *Definition) HasShortcut(shortcut string) bool {
	_, ok := d.shortcuts[shortcut]
	return ok
}

// ShortcutToName returns the long name for a shortcut
func (d *Definition) ShortcutToName(shortcut string) (string, bool) {
	name, ok := d.shortcuts[shortcut]
	return name, ok
}

// OptionForShortcut returns the option owning a shortcut
func (d *Definition) OptionForShortcut(shortcut string) (*Option, bool) {
	name, ok := d.shortcuts[shortcut]
	if !ok {
		return nil, false
	}
	return d.options.Get(name)
}

// Shortcuts returns every declared shortcut, sorted
func (d *Definition) Shortcuts() []string {
	out := make([]string, 0, len(d.shortcuts))
	for s := range d.shortcuts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasNegation reports whether name is the "no-" form of a boolean option
func (d *Definition) HasNegation(name string) bool {
	_, ok := d.negations[name]
	return ok
}

// NegationToName returns the option negated by name
func (d *Definition) NegationToName(name string) (string, bool) {
	option, ok := d.negations[name]
	return option, ok
}

// LongNamesWithPrefix returns the long names (negations included) starting
// with prefix, in lexical order
func (d *Definition) LongNamesWithPrefix(prefix string) []LongName {
	var out []LongName
	d.longNames.Ascend(prefix, func(name string, entry LongName) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		out = append(out, entry)
		return true
	})
	return out
}

// ValidOptions lists every declared option as "--name" in declaration order
func (d *Definition) ValidOptions() []string {
	out := make([]string, 0, d.options.Len())
	for pair := d.options.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, "--"+pair.Key)
	}
	return out
}

// Synopsis returns the usage line. short collapses options to "[options]".
func (d *Definition) Synopsis(short bool) string {
	var elements []string

	if short && d.options.Len() > 0 {
		elements = append(elements, "[options]")
	} else if !short {
		for _, o := range d.Options() {
			value := ""
			if o.AcceptValue() {
				upper := strings.ToUpper(o.name)
				if o.IsValueOptional() {
					value = " [" + upper + "]"
				} else {
					value = " " + upper
				}
			}

			shortcut := ""
			if o.shortcut != "" {
				shortcut = "-" + o.shortcut + "|"
			}

			negation := ""
			if d.HasNegation(NegationPrefix + o.name) {
				negation = "|--" + NegationPrefix + o.name
			}

			elements = append(elements, fmt.Sprintf("[%s--%s%s%s]", shortcut, o.name, value, negation))
		}
	}

	if len(elements) > 0 && len(d.arguments) > 0 {
		elements = append(elements, "[--]")
	}

	tail := ""
	for _, a := range d.arguments {
		element := "<" + a.name + ">"
		if a.IsArray() {
			element += "..."
		}
		if !a.IsRequired() {
			element = "[" + element
			tail += "]"
		}
		elements = append(elements, element)
	}

	return strings.Join(elements, " ") + tail
}
