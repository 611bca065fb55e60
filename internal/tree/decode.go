package tree

import (
	"fmt"
	"strings"
)

// Keys of the on-disk node representation
const (
	keyCommands = "commands"
	keyFlags    = "flags"
)

// FlagPrefix marks a flag word on the command line
const FlagPrefix = "--"

// Decode converts a parsed document (as returned by the koanf parsers) into a Node.
// Flag modes are encoded as "bool", "value", "dynamic" or a list of choices.
func Decode(raw map[string]interface{}) (*Node, error) {
	return decodeNode(raw, "")
}

func decodeNode(raw map[string]interface{}, path string) (*Node, error) {
	node := NewNode()

	for key, value := range raw {
		switch key {
		case keyCommands:
			commands, err := asMap(value, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			for name, child := range commands {
				childPath := joinPath(path, name)
				childMap, err := asMap(child, childPath)
				if err != nil {
					return nil, err
				}
				decoded, err := decodeNode(childMap, childPath)
				if err != nil {
					return nil, err
				}
				node.Commands[name] = decoded
			}
		case keyFlags:
			flags, err := asMap(value, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			for name, mode := range flags {
				flagName := strings.TrimPrefix(name, FlagPrefix)
				if flagName == "" {
					return nil, fmt.Errorf("%s: empty flag name", joinPath(path, key))
				}
				if _, dup := node.Flags[flagName]; dup {
					return nil, fmt.Errorf("%s: flag %q defined twice", joinPath(path, key), flagName)
				}
				decoded, err := decodeMode(mode)
				if err != nil {
					return nil, fmt.Errorf("%s: flag %q: %w", joinPath(path, key), flagName, err)
				}
				node.Flags[flagName] = decoded
			}
		default:
			return nil, fmt.Errorf("%s: unknown key %q", displayPath(path), key)
		}
	}

	return node, nil
}

func decodeMode(value interface{}) (FlagMode, error) {
	switch v := value.(type) {
	case string:
		switch v {
		case "bool":
			return BooleanMode, nil
		case "value":
			return ValueMode, nil
		case "dynamic":
			return DynamicMode, nil
		default:
			return FlagMode{}, fmt.Errorf("unknown flag mode %q", v)
		}
	case []interface{}:
		values := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return FlagMode{}, fmt.Errorf("choice %d is %T, not a string", i, item)
			}
			values = append(values, s)
		}
		return ChoicesMode(values...), nil
	case []string:
		return ChoicesMode(v...), nil
	default:
		return FlagMode{}, fmt.Errorf("unsupported flag mode type %T", value)
	}
}

// asMap accepts nil (an empty YAML mapping) as an empty map
func asMap(value interface{}, path string) (map[string]interface{}, error) {
	switch v := value.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: expected a mapping, got %T", displayPath(path), value)
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
