package input

import (
	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// ParseOption customizes ParseArgv
type ParseOption func(*argvParser)

// Partial tolerates a value-accepting option at the very end of the tokens:
// instead of failing, the option is recorded as pending. Completion parses
// the tokens before the cursor this way.
func Partial() ParseOption {
	return func(p *argvParser) {
		p.partial = true
	}
}

type argvParser struct {
	def          *definition.Definition
	stream       *token.Stream
	in           *Input
	partial      bool
	parseOptions bool
}

// ParseArgv binds command-line tokens (program name excluded) to def.
// The first offending token aborts the parse; no partial binding is
// returned.
func ParseArgv(def *definition.Definition, tokens []string, opts ...ParseOption) (*Input, error) {
	p := &argvParser{
		def:          def,
		stream:       token.NewStream(tokens),
		in:           newInput(def, tokens),
		parseOptions: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.run(); err != nil {
		return nil, err
	}
	return p.in, nil
}

func (p *argvParser) run() error {
	for {
		raw, ok := p.stream.Shift()
		if !ok {
			return nil
		}

		if !p.parseOptions {
			if err := p.parseArgument(raw); err != nil {
				return err
			}
			continue
		}

		var err error
		switch tok := token.Classify(raw); tok.Kind {
		case token.Terminator:
			p.parseOptions = false
			p.in.terminated = true
		case token.LongOption:
			if tok.HasValue {
				p.stream.UnshiftValue(tok.Value)
			}
			err = p.parseLongOption(tok.Name)
		case token.ShortOption:
			err = p.parseShortOption(tok.Name)
		default:
			err = p.parseArgument(raw)
		}
		if err != nil {
			return err
		}
	}
}

// parseShortOption handles "-x", "-xVALUE" and clusters such as "-xvf".
func (p *argvParser) parseShortOption(cluster string) error {
	if len(cluster) == 1 {
		return p.addShortOption(cluster)
	}

	if o, ok := p.def.OptionForShortcut(cluster[:1]); ok && o.AcceptValue() {
		p.stream.UnshiftValue(cluster[1:])
		return p.addOption(o)
	}

	return p.expandCluster(cluster)
}

// expandCluster validates a cluster of shortcuts and pushes them back as
// individual "-x" tokens. The first value-accepting shortcut takes the rest
// of the cluster as its attached value.
func (p *argvParser) expandCluster(cluster string) error {
	var expanded []string
	for i := 0; i < len(cluster); i++ {
		c := cluster[i : i+1]
		o, ok := p.def.OptionForShortcut(c)
		if !ok {
			return derrors.NewMalformedClusterError(cluster, c, p.def.Shortcuts())
		}
		if o.AcceptValue() {
			expanded = append(expanded, "-"+cluster[i:])
			break
		}
		expanded = append(expanded, "-"+c)
	}

	for i := len(expanded) - 1; i >= 0; i-- {
		p.stream.Unshift(expanded[i])
	}
	return nil
}

func (p *argvParser) addShortOption(shortcut string) error {
	o, ok := p.def.OptionForShortcut(shortcut)
	if !ok {
		valid := make([]string, 0)
		for _, s := range p.def.Shortcuts() {
			valid = append(valid, "-"+s)
		}
		return derrors.NewUnknownOptionError(shortcut, true, "", valid)
	}
	return p.addOption(o)
}

func (p *argvParser) parseLongOption(name string) error {
	if o, ok := p.def.Option(name); ok {
		return p.addOption(o)
	}

	if target, ok := p.def.NegationToName(name); ok {
		if e, has := p.stream.PeekEntry(); has && e.Explicit {
			return derrors.NewUnexpectedValueError(name)
		}
		p.in.options[target] = false
		return nil
	}

	return derrors.NewUnknownOptionError(name, false, p.def.SuggestOption(name), p.def.ValidOptions())
}

// addOption resolves the value of o from the stream and binds it
func (p *argvParser) addOption(o *definition.Option) error {
	name := o.Name()
	next, has := p.stream.PeekEntry()

	if !o.AcceptValue() {
		if has && next.Explicit {
			return derrors.NewUnexpectedValueError(name)
		}
		p.in.options[name] = true
		return nil
	}

	if has && (next.Explicit || !token.LooksLikeOption(next.Text)) {
		p.stream.ShiftEntry()
		p.bindValue(o, next.Text)
		return nil
	}

	// valued-absent
	atEnd := p.partial && !has
	if atEnd {
		p.in.pending = name
	}
	if o.IsValueRequired() {
		if atEnd {
			return nil
		}
		return derrors.NewMissingValueError(name)
	}

	if _, set := p.in.options[name]; set && o.IsArray() {
		return nil
	}
	p.in.options[name] = o.Default()
	return nil
}

func (p *argvParser) bindValue(o *definition.Option, value string) {
	if !o.IsArray() {
		p.in.options[o.Name()] = value
		return
	}
	values, _ := p.in.options[o.Name()].([]string)
	p.in.options[o.Name()] = append(values, value)
}

// parseArgument binds a positional token to the next free slot
func (p *argvParser) parseArgument(raw string) error {
	n := len(p.in.arguments)
	if a, ok := p.def.ArgumentAt(n); ok {
		if a.IsArray() {
			p.in.arguments[a.Name()] = []string{raw}
		} else {
			p.in.arguments[a.Name()] = raw
		}
		return nil
	}

	if a, ok := p.def.ArgumentAt(n - 1); ok && a.IsArray() {
		values := p.in.arguments[a.Name()].([]string)
		p.in.arguments[a.Name()] = append(values, raw)
		return nil
	}

	names := make([]string, 0, n)
	for _, a := range p.def.Arguments() {
		names = append(names, a.Name())
	}
	return derrors.NewTooManyArgumentsError(p.def.Name(), raw, names)
}
