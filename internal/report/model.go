package report

import "github.com/NikitaCOEUR/fastcomplete/internal/tree"

// Data contains everything displayed by inspect
type Data struct {
	Version  string
	TreePath string
	// Path is the command path of the inspected subtree, empty for the whole tree
	Path  []string
	Stats tree.Stats

	Commands []CommandInfo
	Flags    []FlagInfo
}

// CommandInfo describes a direct subcommand of the inspected node
type CommandInfo struct {
	Name        string
	Subcommands int
	Flags       int
}

// FlagInfo describes a flag defined on the inspected node
type FlagInfo struct {
	Name   string
	Kind   string
	Values []string
}
