package shell

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// ScriptParams describes the programs a registration script wires to
// "clinput complete"
type ScriptParams struct {
	// Programs are the command names to register
	Programs []string
	// Binary is how the script invokes clinput
	Binary string
	// Manifest is exported as CLINPUT_MANIFEST when set
	Manifest string
}

// ScriptGenerator renders a shell registration script
type ScriptGenerator interface {
	// Name returns the shell name (bash, zsh, etc.)
	Name() string
	// Generate writes the script
	Generate(w io.Writer, params ScriptParams) error
}

// templateGenerator renders one of the embedded templates
type templateGenerator struct {
	name string
	tmpl *template.Template
}

// Name returns the shell name
func (g *templateGenerator) Name() string { return g.name }

// Generate writes the script for params
func (g *templateGenerator) Generate(w io.Writer, params ScriptParams) error {
	if len(params.Programs) == 0 {
		return errors.New("at least one program name is required")
	}
	for _, p := range params.Programs {
		if !programName.MatchString(p) {
			return fmt.Errorf("invalid program name %q", p)
		}
	}
	if params.Binary == "" {
		params.Binary = "clinput"
	}

	data := struct {
		ScriptParams
		Func string
	}{
		ScriptParams: params,
		Func:         funcName(params.Programs[0]),
	}

	if err := g.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s script: %w", g.name, err)
	}
	return nil
}

var (
	programName  = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)
	notFuncChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// funcName turns a program name into a shell function suffix
func funcName(program string) string {
	return notFuncChars.ReplaceAllString(program, "_")
}

func newTemplateGenerator(name, text string) *templateGenerator {
	funcs := sprig.TxtFuncMap()
	funcs["shq"] = func(s string) string { return token.Join(s) }

	return &templateGenerator{
		name: name,
		tmpl: template.Must(template.New(name).Funcs(funcs).Parse(text)),
	}
}

var generators = map[string]*templateGenerator{
	shellBash: newTemplateGenerator(shellBash, bashTemplate),
	shellZsh:  newTemplateGenerator(shellZsh, zshTemplate),
	shellFish: newTemplateGenerator(shellFish, fishTemplate),
}

// NewScriptGenerator returns the registration script generator for a shell
func NewScriptGenerator(shell string) (ScriptGenerator, error) {
	g, ok := generators[shell]
	if !ok {
		return nil, fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Supported, ", "))
	}
	return g, nil
}
