package tree

import (
	"github.com/samber/lo"
)

// Stats summarizes a tree or subtree
type Stats struct {
	Commands    int          // Number of command nodes, excluding the starting node
	Leaves      int          // Commands without subcommands
	MaxDepth    int          // Longest command path below the starting node
	Flags       int          // Flag definitions across all nodes
	FlagsByKind map[Kind]int // Flag definitions per mode kind
	Choices     int          // Total number of enumerated values
	GlobalFlags []string     // Sorted flag names of the starting node
}

// Collect walks the tree under n and gathers statistics
func Collect(n *Node) Stats {
	stats := Stats{
		FlagsByKind: make(map[Kind]int),
		GlobalFlags: n.FlagNames(),
	}

	n.Walk(func(path []string, node *Node) {
		if len(path) > 0 {
			stats.Commands++
			if node.IsLeaf() {
				stats.Leaves++
			}
		}
		stats.MaxDepth = lo.Max([]int{stats.MaxDepth, len(path)})

		for _, mode := range node.Flags {
			stats.Flags++
			stats.FlagsByKind[mode.Kind]++
			stats.Choices += len(mode.Values)
		}
	})

	return stats
}
