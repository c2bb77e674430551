package shell

import _ "embed"

// Embedded shell registration templates

//go:embed templates/bash.tmpl
var bashTemplate string

//go:embed templates/zsh.tmpl
var zshTemplate string

//go:embed templates/fish.tmpl
var fishTemplate string
