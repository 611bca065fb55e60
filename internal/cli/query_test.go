package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "commands", line: "gcloud comp", expected: "components\ncompute\n"},
		{name: "choices", line: "gcloud --verbosity=d", expected: "debug\n"},
		{name: "nothing", line: "gcloud storage ", expected: ""},
		{name: "dynamic", line: "gcloud --account ", expected: "# cannot complete statically (dynamic)\n"},
		{name: "positional", line: "gcloud components install ", expected: "# cannot complete statically (positional)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Query(context.Background(), QueryParams{Config: fixtureConfig(), Line: tt.line, Out: &buf})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestQuery_TreeOverride(t *testing.T) {
	var buf bytes.Buffer
	yamlTree := filepath.Join("..", "tree", "testdata", "completions.yaml")

	err := Query(context.Background(), QueryParams{
		Config:   &config.Config{TreePath: "/does/not/exist.json"},
		TreePath: yamlTree,
		Line:     "gcloud i",
		Out:      &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, "info\n", buf.String())
}

func TestQuery_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Query(context.Background(), QueryParams{Config: fixtureConfig(), Line: `gcloud 'open`, Out: &buf})
	require.Error(t, err)
	assert.True(t, derrors.IsTokenize(err))

	err = Query(context.Background(), QueryParams{Config: &config.Config{InstallRoot: t.TempDir()}, Line: "gcloud ", Out: &buf})
	assert.Error(t, err)

	err = Query(context.Background(), QueryParams{
		TreePath: filepath.Join("..", "tree", "testdata", "invalid_mode.json"),
		Line:     "gcloud ",
		Out:      &buf,
	})
	assert.Error(t, err)
}
