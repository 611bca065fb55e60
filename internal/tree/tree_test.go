package tree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "bool", Boolean.String())
	assert.Equal(t, "value", Value.String())
	assert.Equal(t, "dynamic", Dynamic.String())
	assert.Equal(t, "choices", Choices.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestFlagMode_IsBoolean(t *testing.T) {
	assert.True(t, BooleanMode.IsBoolean())
	assert.False(t, ValueMode.IsBoolean())
	assert.False(t, DynamicMode.IsBoolean())
	assert.False(t, ChoicesMode("a").IsBoolean())
	assert.True(t, FlagMode{}.IsBoolean(), "zero value means no value expected")
}

func TestLoad_JSON(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"components", "compute", "config"}, root.CommandNames())
	assert.Equal(t, DynamicMode, root.Flags["account"])
	assert.Equal(t, BooleanMode, root.Flags["quiet"])
	assert.Equal(t, ChoicesMode("json", "yaml", "text"), root.Flags["format"])
	_, hasDashed := root.Flags["--format"]
	assert.False(t, hasDashed, "leading dashes must be stripped")

	create, ok := root.Find("compute", "instances", "create")
	require.True(t, ok)
	assert.Equal(t, ValueMode, create.Flags["machine-type"])
	assert.True(t, create.IsLeaf())
	assert.Equal(t, Choices, create.Flags["zone"].Kind)
	assert.Len(t, create.Flags["zone"].Values, 4)
}

func TestLoad_YAML(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"compute", "info"}, root.CommandNames())
	info, ok := root.Child("info")
	require.True(t, ok)
	assert.True(t, info.IsLeaf())
	assert.Empty(t, info.Flags)

	list, ok := root.Find("compute", "instances", "list")
	require.True(t, ok)
	assert.Equal(t, ValueMode, list.Flags["filter"])
}

func TestLoad_TOML(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.toml"))
	require.NoError(t, err)

	compute, ok := root.Child("compute")
	require.True(t, ok)
	assert.Equal(t, ChoicesMode("us-central1-a", "us-central1-b"), compute.Flags["zone"])
	assert.Equal(t, BooleanMode, root.Flags["quiet"])

	_, ok = root.Find("compute", "instances", "list")
	assert.True(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "malformed json", file: "malformed.json"},
		{name: "unknown flag mode", file: "invalid_mode.json"},
		{name: "unknown node key", file: "unknown_key.yaml"},
		{name: "duplicate flag after stripping dashes", file: "duplicate_flag.json"},
		{name: "missing file", file: "does-not-exist.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Load(filepath.Join("testdata", tt.file))
			assert.Nil(t, root)
			require.Error(t, err)

			var loadErr *derrors.TreeLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "TREE_LOAD_ERROR", loadErr.Code())
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completions.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tree format")
}

func TestDecode_ChoiceTypes(t *testing.T) {
	_, err := Decode(map[string]interface{}{
		"flags": map[string]interface{}{"zone": []interface{}{"a", 3}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choice 1")

	root, err := Decode(map[string]interface{}{
		"flags": map[string]interface{}{"zone": []string{"a", "b"}, "empty": []interface{}{}},
	})
	require.NoError(t, err)
	assert.Equal(t, ChoicesMode("a", "b"), root.Flags["zone"])
	assert.Equal(t, Choices, root.Flags["empty"].Kind)
	assert.Empty(t, root.Flags["empty"].Values)
}

func TestDecode_NonMappingNode(t *testing.T) {
	_, err := Decode(map[string]interface{}{
		"commands": map[string]interface{}{"compute": "oops"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute")
}

func TestDecode_EmptyFlagName(t *testing.T) {
	_, err := Decode(map[string]interface{}{
		"flags": map[string]interface{}{"--": "bool"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty flag name")
}

func TestNode_FindAndChild(t *testing.T) {
	root := NewNode()
	compute := NewNode()
	root.Commands["compute"] = compute

	found, ok := root.Find()
	assert.True(t, ok)
	assert.Same(t, root, found)

	found, ok = root.Find("compute")
	assert.True(t, ok)
	assert.Same(t, compute, found)

	_, ok = root.Find("compute", "missing")
	assert.False(t, ok)

	var nilNode *Node
	_, ok = nilNode.Child("x")
	assert.False(t, ok)
}

func TestNode_Walk(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.json"))
	require.NoError(t, err)

	var visited []string
	root.Walk(func(path []string, _ *Node) {
		joined := ""
		for i, p := range path {
			if i > 0 {
				joined += " "
			}
			joined += p
		}
		visited = append(visited, joined)
	})

	assert.Equal(t, []string{
		"",
		"components",
		"components install",
		"components list",
		"compute",
		"compute instances",
		"compute instances create",
		"compute instances list",
		"compute zones",
		"compute zones list",
		"config",
		"config get-value",
		"config set",
	}, visited)
}

func TestCollect(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.json"))
	require.NoError(t, err)

	stats := Collect(root)
	assert.Equal(t, 12, stats.Commands)
	assert.Equal(t, 7, stats.Leaves)
	assert.Equal(t, 3, stats.MaxDepth)
	assert.Equal(t, 14, stats.Flags)
	assert.Equal(t, 3, stats.FlagsByKind[Boolean])
	assert.Equal(t, 4, stats.FlagsByKind[Value])
	assert.Equal(t, 3, stats.FlagsByKind[Dynamic])
	assert.Equal(t, 4, stats.FlagsByKind[Choices])
	assert.Equal(t, 17, stats.Choices)
	assert.Equal(t, []string{"account", "billing-project", "format", "log-http", "project", "quiet", "verbosity"}, stats.GlobalFlags)
}

func TestCollect_Subtree(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "completions.json"))
	require.NoError(t, err)

	instances, ok := root.Find("compute", "instances")
	require.True(t, ok)

	stats := Collect(instances)
	assert.Equal(t, 2, stats.Commands)
	assert.Equal(t, 2, stats.Leaves)
	assert.Equal(t, 1, stats.MaxDepth)
	assert.Empty(t, stats.GlobalFlags)
}
