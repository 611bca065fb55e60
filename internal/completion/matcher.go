package completion

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

// valueSep separates a flag name from its value in a single word (--flag=value)
const valueSep = "="

// Matcher completes command lines against a static command tree
type Matcher struct {
	root *tree.Node
}

// NewMatcher creates a matcher over root. The root's flags are global flags.
func NewMatcher(root *tree.Node) *Matcher {
	if root == nil {
		root = tree.NewNode()
	}
	return &Matcher{root: root}
}

// walkState is what the matcher knows after consuming a word
type walkState struct {
	node     *tree.Node
	flagMode tree.FlagMode
}

// step is a classified word together with the table it is looked up in
type step struct {
	word   string
	isFlag bool
	flags  map[string]tree.FlagMode
	cmds   map[string]*tree.Node
}

// has reports whether the word names an entry of the step's table
func (s step) has() bool {
	if s.isFlag {
		_, ok := s.flags[strings.TrimPrefix(s.word, tree.FlagPrefix)]
		return ok
	}
	_, ok := s.cmds[s.word]
	return ok
}

// empty reports whether the step's table has no entries
func (s step) empty() bool {
	if s.isFlag {
		return len(s.flags) == 0
	}
	return len(s.cmds) == 0
}

// Complete returns the sorted completions for the last word of words.
// words excludes the program name; the last word may be empty.
//
// An intermediate word that matches nothing while no flag value is pending
// ends the walk with no completions. Dynamic flag values and positional
// arguments cannot be completed statically and yield a
// *derrors.CannotHandleCompletionError.
func (m *Matcher) Complete(words []string) ([]string, error) {
	queue := append([]string(nil), words...)
	state := walkState{node: m.root, flagMode: tree.BooleanMode}

	for len(queue) > 0 {
		word := queue[0]
		queue = queue[1:]

		s := m.classify(state.node, word)
		if s.isFlag {
			// --flag=value is consumed as --flag followed by value
			if name, value, found := strings.Cut(s.word, valueSep); found {
				s.word = name
				queue = append([]string{value}, queue...)
			}
		}

		if len(queue) > 0 {
			next, ok := m.consume(state, s)
			if !ok {
				return []string{}, nil
			}
			state = next
			continue
		}

		return m.completeFinal(state, s)
	}

	return []string{}, nil
}

// classify selects the lookup table for word at node
func (m *Matcher) classify(node *tree.Node, word string) step {
	if strings.HasPrefix(word, tree.FlagPrefix) {
		return step{word: word, isFlag: true, flags: m.flagTable(node)}
	}
	return step{word: word, cmds: node.Commands}
}

// flagTable merges the node's flags with the global flags. Node flags win on
// a name clash. The tree itself is never modified.
func (m *Matcher) flagTable(node *tree.Node) map[string]tree.FlagMode {
	if node == m.root || len(node.Flags) == 0 {
		return m.root.Flags
	}
	if len(m.root.Flags) == 0 {
		return node.Flags
	}
	return lo.Assign(m.root.Flags, node.Flags)
}

// consume advances the state over an intermediate word
func (m *Matcher) consume(state walkState, s step) (walkState, bool) {
	switch {
	case s.has():
		if s.isFlag {
			state.flagMode = s.flags[strings.TrimPrefix(s.word, tree.FlagPrefix)]
			return state, true
		}
		return walkState{node: s.cmds[s.word], flagMode: tree.BooleanMode}, true
	case !state.flagMode.IsBoolean():
		// The word is the value of the pending flag
		state.flagMode = tree.BooleanMode
		return state, true
	default:
		return state, false
	}
}

// completeFinal produces the candidates for the word under the cursor
func (m *Matcher) completeFinal(state walkState, s step) ([]string, error) {
	switch state.flagMode.Kind {
	case tree.Dynamic:
		return nil, derrors.NewCannotHandleError(derrors.ReasonDynamic,
			"dynamic completions are not handled statically", nil)
	case tree.Choices:
		return sorted(lo.Filter(state.flagMode.Values, func(v string, _ int) bool {
			return strings.HasPrefix(v, s.word)
		})), nil
	case tree.Boolean:
	default:
		return []string{}, nil
	}

	if s.empty() {
		return nil, derrors.NewCannotHandleError(derrors.ReasonPositional,
			"positional completions are not handled statically", nil)
	}

	var completions []string
	if s.isFlag {
		for name, mode := range s.flags {
			candidate := tree.FlagPrefix + name
			if !strings.HasPrefix(candidate, s.word) {
				continue
			}
			if !mode.IsBoolean() {
				candidate += valueSep
			}
			completions = append(completions, candidate)
		}
	} else {
		for name := range s.cmds {
			if strings.HasPrefix(name, s.word) {
				completions = append(completions, name)
			}
		}
	}

	return sorted(completions), nil
}

func sorted(values []string) []string {
	if values == nil {
		return []string{}
	}
	sort.Strings(values)
	return values
}
