package definition

// meta is the descriptive and completion metadata shared by arguments and options
type meta struct {
	description string
	suggestions []string
	completion  string
}

// Attr customizes the metadata of an argument or option at declaration
type Attr func(*meta)

// Suggest declares the values offered when completing the argument or option
func Suggest(values ...string) Attr {
	return func(m *meta) {
		m.suggestions = append([]string(nil), values...)
	}
}

// Complete names a dynamic completer ("files", "dirs", "commands", or any
// name registered on the completion engine) used when no static suggestions
// are declared.
func Complete(hint string) Attr {
	return func(m *meta) {
		m.completion = hint
	}
}

// Description returns the help text
func (m *meta) Description() string { return m.description }

// Suggestions returns the declared completion values
func (m *meta) Suggestions() []string {
	return append([]string(nil), m.suggestions...)
}

// Completion returns the dynamic completer name, or ""
func (m *meta) Completion() string { return m.completion }
