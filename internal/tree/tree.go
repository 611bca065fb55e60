// Package tree holds the static command tree used for completion.
//
// The tree is generated ahead of time from the full CLI and describes every
// command, subcommand and flag. It is loaded once per completion request and
// never mutated afterwards.
package tree

import (
	"sort"

	"github.com/samber/lo"
)

// Kind classifies what, if anything, follows a flag name
type Kind int

const (
	// Boolean flags take no value
	Boolean Kind = iota
	// Value flags take an arbitrary value that cannot be enumerated
	Value
	// Dynamic flags have values computed at runtime by the full CLI
	Dynamic
	// Choices flags take one of a fixed set of values
	Choices
)

// String returns the on-disk spelling of the kind
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "bool"
	case Value:
		return "value"
	case Dynamic:
		return "dynamic"
	case Choices:
		return "choices"
	default:
		return "unknown"
	}
}

// FlagMode is the tagged variant describing a flag. Values is only set for Choices.
type FlagMode struct {
	Kind   Kind
	Values []string
}

// Predefined modes for the kinds that carry no payload
var (
	BooleanMode = FlagMode{Kind: Boolean}
	ValueMode   = FlagMode{Kind: Value}
	DynamicMode = FlagMode{Kind: Dynamic}
)

// ChoicesMode returns a Choices mode for the given values
func ChoicesMode(values ...string) FlagMode {
	return FlagMode{Kind: Choices, Values: values}
}

// IsBoolean reports whether the mode expects no value
func (m FlagMode) IsBoolean() bool {
	return m.Kind == Boolean
}

// Node is a command or command group
type Node struct {
	Commands map[string]*Node
	Flags    map[string]FlagMode
}

// NewNode returns an empty node with initialized maps
func NewNode() *Node {
	return &Node{
		Commands: make(map[string]*Node),
		Flags:    make(map[string]FlagMode),
	}
}

// Child returns the subcommand with the given name
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	child, ok := n.Commands[name]
	return child, ok
}

// Find follows a path of command names from n
func (n *Node) Find(path ...string) (*Node, bool) {
	current := n
	for _, name := range path {
		next, ok := current.Child(name)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, current != nil
}

// CommandNames returns the sorted subcommand names
func (n *Node) CommandNames() []string {
	names := lo.Keys(n.Commands)
	sort.Strings(names)
	return names
}

// FlagNames returns the sorted flag names, without dashes
func (n *Node) FlagNames() []string {
	names := lo.Keys(n.Flags)
	sort.Strings(names)
	return names
}

// IsLeaf returns true if the node has no subcommands
func (n *Node) IsLeaf() bool {
	return len(n.Commands) == 0
}

// Walk calls fn for n and every descendant, depth-first, in sorted name order.
// path is the list of command names leading to the node; it must not be retained.
func (n *Node) Walk(fn func(path []string, node *Node)) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func([]string, *Node)) {
	fn(path, n)
	for _, name := range n.CommandNames() {
		n.Commands[name].walk(append(path, name), fn)
	}
}
