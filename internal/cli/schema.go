package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

// Schema output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Schema displays or exports the JSON Schema for static tree files
func Schema(outputPath, format string, out io.Writer) error {
	out = stdout(out)

	content, err := renderSchema(format)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		printf(out, "Tree schema written to: %s\n", outputPath)
		return nil
	}

	printf(out, "%s\n", content)
	return nil
}

func renderSchema(format string) (string, error) {
	schema := tree.GetSchemaJSON()

	switch format {
	case "", FormatJSON:
		return schema, nil
	case FormatYAML:
		// JSON is valid YAML: decoding into a node keeps the key order
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(schema), &node); err != nil {
			return "", fmt.Errorf("failed to convert schema: %w", err)
		}
		blockStyle(&node)
		data, err := yaml.Marshal(&node)
		if err != nil {
			return "", fmt.Errorf("failed to convert schema: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported schema format: %s", format)
	}
}

// blockStyle drops the flow style inherited from JSON
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}
