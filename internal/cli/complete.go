package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/NikitaCOEUR/clinput/internal/completion"
	"github.com/NikitaCOEUR/clinput/internal/config"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/shell"
	"github.com/NikitaCOEUR/clinput/internal/timing"
	"github.com/NikitaCOEUR/clinput/internal/trace"
)

// Environment set by the registration scripts
const (
	CWordEnvVar = "CLINPUT_COMP_CWORD"
	ShellEnvVar = "CLINPUT_SHELL"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ManifestPath string
	// AuthPath is the grants file; empty uses auth.DefaultPath
	AuthPath string
	LogLevel string
	Shell    string
	// Words is the command line, program name first (COMP_WORDS)
	Words []string
	// CWord is the index in Words of the word being completed (COMP_CWORD).
	// Negative means the last word.
	CWord  int
	Output io.Writer
}

// CWordFromEnv reads CLINPUT_COMP_CWORD, defaulting to the last word
func CWordFromEnv(words []string) int {
	if v := os.Getenv(CWordEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return len(words) - 1
}

// Complete prints the candidates for the word under the cursor, one per
// line in the shell's format. A command line that does not bind yet prints
// nothing. Internal failures (manifest, completer, output) are returned as
// CompletionError.
func Complete(ctx context.Context, params CompleteParams) error {
	defer trace.Region(ctx, "cli.Complete")()

	log := logger.New(params.LogLevel, nil).With("complete")
	timer := timing.NewTimer()
	out := outputOf(params.Output)

	shellName, err := shell.Detect(params.Shell)
	if err != nil {
		return derrors.NewCompletionError("", "cannot select an output format", err)
	}
	formatter, err := shell.NewFormatter(shellName)
	if err != nil {
		return derrors.NewCompletionError("", "cannot select an output format", err)
	}

	words, cword := completionWords(params.Words, params.CWord)
	log.Debug().
		Strs("words", words).
		Int("cword", cword).
		Str("shell", shellName).
		Msg("Received completion request")
	if cword < 1 {
		return nil
	}

	m, path, err := loadManifest(params.ManifestPath, log)
	if err != nil {
		return derrors.NewCompletionError(words[0], "failed to load manifest", err)
	}
	timer.Mark("load")

	tokens := words[1:]
	cursor := cword - 1

	def, err := resolveDefinition(m, tokens[:cursor], log)
	if err != nil {
		var nf *derrors.NotFoundError
		if errors.As(err, &nf) {
			log.Debug().Err(err).Msg("Unknown command, no candidates")
			return nil
		}
		return derrors.NewCompletionError(m.Name, "invalid manifest", err)
	}

	engine := completion.NewEngine()
	engine.Register(config.CommandsCompleter, commandsCompleter(m))
	if commands := m.ExecCommands(); len(commands) > 0 && !execAllowed(params.AuthPath, path, commands, log) {
		engine.DenyExec()
	}

	var result *completion.Result
	trace.WithRegion(ctx, "completion.Complete", func() {
		result, err = engine.Complete(ctx, def, tokens, cursor)
	})
	if err != nil {
		log.Error().Err(err).Str("command", def.Name()).Msg("Completer failed")
		return err
	}
	timer.Mark("complete")

	log.Debug().
		Str("command", def.Name()).
		Str("type", result.Input.Type.String()).
		Str("name", result.Input.Name).
		Str("source", result.Source).
		Int("candidates", len(result.Suggestions)).
		Msg("Completed")
	timer.Log(log, "Completion timings")

	if err := formatter.Format(out, result.Suggestions); err != nil {
		return derrors.NewCompletionError(def.Name(), "failed to write candidates", err)
	}
	return nil
}

// execAllowed reports whether the manifest at path holds a grant for its
// completion commands
func execAllowed(authPath, path string, commands []string, log *logger.Logger) bool {
	a, err := openAuth(authPath)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot read grants, completion commands disabled")
		return false
	}
	if !a.IsAllowed(path, commands) {
		log.Info().
			Str("manifest", path).
			Strs("commands", commands).
			Msg("Manifest not allowed, completion commands disabled (run 'clinput allow')")
		return false
	}
	return true
}

// completionWords resolves a negative or past-the-end cword. Past the end
// means a new empty word is being completed.
func completionWords(words []string, cword int) ([]string, int) {
	if len(words) == 0 {
		return words, -1
	}
	if cword < 0 {
		return words, len(words) - 1
	}
	if cword >= len(words) {
		words = append(append([]string{}, words...), "")
		return words, len(words) - 1
	}
	return words, cword
}

// commandsCompleter offers the manifest's command names and aliases
func commandsCompleter(m *config.Manifest) completion.StaticCompleter {
	var s completion.StaticCompleter
	for _, c := range m.Commands {
		s = append(s, completion.Suggestion{Value: c.Name, Description: c.Description})
		for _, alias := range c.Aliases {
			s = append(s, completion.Suggestion{Value: alias, Description: c.Description})
		}
	}
	return s
}
