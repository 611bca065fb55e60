package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHook(t *testing.T) {
	var buf bytes.Buffer
	err := Hook(HookParams{Shell: "bash", Binary: "/usr/lib/sdk/bin/fastcomplete", Programs: []string{"gcloud"}, Out: &buf})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "/usr/lib/sdk/bin/fastcomplete complete")
	assert.Contains(t, buf.String(), "-F __fastcomplete_complete gcloud")
}

func TestHook_DetectsShellAndBinary(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	var buf bytes.Buffer
	require.NoError(t, Hook(HookParams{Programs: []string{"gcloud"}, Out: &buf}))
	assert.Contains(t, buf.String(), "bashcompinit")
	assert.Contains(t, buf.String(), " complete 8>&1")
}

func TestHook_Errors(t *testing.T) {
	err := Hook(HookParams{Shell: "fish", Programs: []string{"gcloud"}, Out: &bytes.Buffer{}})
	assert.Error(t, err)

	err = Hook(HookParams{Shell: "bash", Binary: "fastcomplete", Out: &bytes.Buffer{}})
	assert.Error(t, err)
}
