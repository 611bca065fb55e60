package shell

import _ "embed"

// Registration templates compiled into the binary

//go:embed templates/bash.tmpl
var bashTemplate string

//go:embed templates/zsh.tmpl
var zshPreamble string
