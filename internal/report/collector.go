// Package report gathers and displays statistics about a static command tree.
package report

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
	"github.com/NikitaCOEUR/fastcomplete/pkg/version"
)

// Collect loads the tree at treePath and describes the node at path
func Collect(treePath string, path []string) (*Data, error) {
	root, err := tree.Load(treePath)
	if err != nil {
		return nil, err
	}

	data, err := Describe(root, path)
	if err != nil {
		return nil, err
	}
	data.TreePath = treePath
	return data, nil
}

// Describe builds report data for the node at path below root
func Describe(root *tree.Node, path []string) (*Data, error) {
	node, ok := root.Find(path...)
	if !ok {
		return nil, fmt.Errorf("command not found: %s", strings.Join(path, " "))
	}

	data := &Data{
		Version: version.Version,
		Path:    path,
		Stats:   tree.Collect(node),
	}

	data.Commands = lo.Map(node.CommandNames(), func(name string, _ int) CommandInfo {
		child := node.Commands[name]
		return CommandInfo{
			Name:        name,
			Subcommands: len(child.Commands),
			Flags:       len(child.Flags),
		}
	})

	data.Flags = lo.Map(node.FlagNames(), func(name string, _ int) FlagInfo {
		mode := node.Flags[name]
		return FlagInfo{
			Name:   name,
			Kind:   mode.Kind.String(),
			Values: mode.Values,
		}
	})

	return data, nil
}
