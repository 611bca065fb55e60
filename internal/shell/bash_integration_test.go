//go:build unix

package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary answers every completion request with candidates on descriptor 8
// and records the protocol variables it was given
func fakeBinary(t *testing.T, candidates string) (binary, record string) {
	t.Helper()
	dir := t.TempDir()
	record = filepath.Join(dir, "record")
	binary = filepath.Join(dir, "fake fastcomplete")
	script := "#!/bin/sh\n" +
		"printf '%s|%s|%s|%s' \"$1\" \"$COMP_LINE\" \"$COMP_POINT\" \"$_ARGCOMPLETE\" > '" + record + "'\n" +
		"printf '" + candidates + "' >&8\n" +
		"echo 'stdout is discarded'\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))
	return binary, record
}

func runBash(t *testing.T, hook, line string) string {
	t.Helper()
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	script := hook + `
COMP_LINE='` + line + `'
COMP_POINT=${#COMP_LINE}
__fastcomplete_complete
printf '%s\n' "${COMPREPLY[@]}"
`
	out, err := exec.Command(bash, "--norc", "--noprofile", "-c", script).Output()
	require.NoError(t, err)
	return string(out)
}

func TestBashHook_ReadsDescriptor8(t *testing.T) {
	binary, record := fakeBinary(t, `components\vcompute`)

	hook, err := (&BashCodeGenerator{}).Generate(Registration{Binary: binary, Programs: []string{"gcloud"}})
	require.NoError(t, err)

	out := runBash(t, hook, "gcloud comp")
	assert.Equal(t, []string{"components", "compute"}, strings.Fields(out))

	recorded, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, "complete|gcloud comp|11|1", string(recorded))
}

func TestBashHook_NoCandidates(t *testing.T) {
	binary, _ := fakeBinary(t, ``)

	hook, err := (&BashCodeGenerator{}).Generate(Registration{Binary: binary, Programs: []string{"gcloud"}})
	require.NoError(t, err)

	assert.Empty(t, strings.TrimSpace(runBash(t, hook, "gcloud storage ")))
}
