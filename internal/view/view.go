package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderCommand renders a definition to a string
func RenderCommand(data *Command) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⌨️  "+data.Name) + "\n")
	if data.Description != "" {
		b.WriteString("   " + subtleStyle.Render(data.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Usage:") + "\n")
	b.WriteString("   " + valueStyle.Render(data.Synopsis) + "\n")

	if len(data.Arguments) > 0 {
		b.WriteString("\n" + renderArguments(data.Arguments) + "\n")
	}
	if len(data.Options) > 0 {
		b.WriteString("\n" + renderOptions(data.Options) + "\n")
	}
	if len(data.Commands) > 0 {
		b.WriteString("\n" + renderCommands(data.Commands) + "\n")
	}

	return b.String()
}

func renderArguments(arguments []Argument) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Arguments:") + "\n")

	width := 0
	for _, a := range arguments {
		width = max(width, lipgloss.Width(a.Name))
	}

	for _, a := range arguments {
		b.WriteString("   " + keyStyle.Width(width).Render(a.Name) + "  ")

		var flags []string
		if a.Required {
			flags = append(flags, warningStyle.Render("required"))
		}
		if a.Array {
			flags = append(flags, subtleStyle.Render("array"))
		}
		if len(flags) > 0 {
			b.WriteString("(" + strings.Join(flags, ", ") + ") ")
		}

		b.WriteString(valueStyle.Render(a.Description))
		b.WriteString(renderExtras(a.Default, a.Suggestions, a.Completer))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderOptions(options []Option) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Options:") + "\n")

	labels := make([]string, len(options))
	width := 0
	for i, o := range options {
		labels[i] = optionLabel(o)
		width = max(width, lipgloss.Width(labels[i]))
	}

	for i, o := range options {
		b.WriteString("   " + keyStyle.Width(width).Render(labels[i]) + "  ")
		b.WriteString(valueStyle.Render(o.Description))
		if o.Array {
			b.WriteString(subtleStyle.Render(" (multiple values allowed)"))
		}
		if o.Negatable {
			b.WriteString(subtleStyle.Render(" (negatable)"))
		}
		b.WriteString(renderExtras(o.Default, o.Suggestions, o.Completer))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCommands(commands []Summary) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Commands:") + "\n")

	width := 0
	for _, c := range commands {
		width = max(width, lipgloss.Width(c.Name))
	}

	for _, c := range commands {
		b.WriteString("   " + keyStyle.Width(width).Render(c.Name) + "  " + valueStyle.Render(c.Description))
		if len(c.Aliases) > 0 {
			b.WriteString(subtleStyle.Render(" [aliases: " + strings.Join(c.Aliases, ", ") + "]"))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderExtras(def any, suggestions []string, completer string) string {
	var b strings.Builder
	if def != nil {
		b.WriteString(subtleStyle.Render(" [default: " + displayValue(def) + "]"))
	}
	if len(suggestions) > 0 {
		b.WriteString(subtleStyle.Render(" [values: " + strings.Join(suggestions, ", ") + "]"))
	}
	if completer != "" {
		b.WriteString(subtleStyle.Render(" [completes: " + completer + "]"))
	}
	return b.String()
}

// RenderInput renders the bindings of a parsed command line
func RenderInput(data *Input) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⌨️  Command: ") + valueStyle.Render(data.Command) + "\n")

	if len(data.Arguments) > 0 {
		b.WriteString("\n" + renderBindings("Arguments:", data.Arguments) + "\n")
	}
	if len(data.Options) > 0 {
		b.WriteString("\n" + renderBindings("Options:", data.Options) + "\n")
	}

	b.WriteString("\n")
	if data.Terminated {
		b.WriteString(keyStyle.Render("Terminated: ") + valueStyle.Render("yes") + "\n")
	}
	b.WriteString(keyStyle.Render("Normalized: ") + valueStyle.Render(data.Normalized) + "\n")

	return b.String()
}

func renderBindings(title string, bindings []Binding) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title) + "\n")

	width := 0
	for _, binding := range bindings {
		width = max(width, lipgloss.Width(binding.Name))
	}

	for _, binding := range bindings {
		status := successStyle.Render("✓")
		note := ""
		if !binding.Set {
			status = subtleStyle.Render("·")
			note = subtleStyle.Render(" (default)")
		}
		b.WriteString(fmt.Sprintf("   %s %s = %s%s\n",
			status,
			keyStyle.Width(width).Render(binding.Name),
			valueStyle.Render(displayValue(binding.Value)),
			note))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// displayValue formats a bound or default value for humans
func displayValue(v any) string {
	switch d := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", d)
	case []string:
		quoted := make([]string, len(d))
		for i, s := range d {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(d)
	}
}

// optionLabel renders "-o, --out=OUT", "    --color[=COLOR]" or "-v, --verbose"
func optionLabel(o Option) string {
	label := "    --" + o.Name
	if o.Shortcut != "" {
		label = "-" + o.Shortcut + ", --" + o.Name
	}

	placeholder := strings.ToUpper(strings.ReplaceAll(o.Name, "-", "_"))
	switch o.Value {
	case "required":
		label += "=" + placeholder
	case "optional":
		label += "[=" + placeholder + "]"
	}
	return label
}
