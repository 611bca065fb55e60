//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// TreeNode mirrors the on-disk node layout
type TreeNode struct {
	Commands map[string]*TreeNode    `json:"commands,omitempty" jsonschema:"description=Subcommands by name"`
	Flags    map[string]FlagModeValue `json:"flags,omitempty" jsonschema:"description=Flags by name, with or without the leading --"`
}

// FlagModeValue is either a mode keyword or a list of choices
type FlagModeValue struct{}

// JSONSchema implements custom schema generation for FlagModeValue
func (FlagModeValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:        "string",
				Enum:        []any{"bool", "value", "dynamic"},
				Description: "bool takes no value, value takes an arbitrary value, dynamic values are computed by the full CLI",
			},
			{
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "The fixed set of accepted values",
			},
		},
	}
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:            false,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}

	schema := r.Reflect(&TreeNode{})

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://raw.githubusercontent.com/NikitaCOEUR/fastcomplete/main/schema/tree.schema.json"
	schema.Title = "fastcomplete static command tree"
	schema.Description = "A command node: its subcommands and the flags it accepts. The root node's flags apply to every command."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schema: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("schema.json", append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("wrote schema.json")
}
