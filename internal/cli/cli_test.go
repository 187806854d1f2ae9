package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonasCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"personas"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, Execute())
	assert.Contains(t, out.String(), "jessica *")
	assert.Contains(t, out.String(), "Fenrir")
}

func TestSeedCommandWithoutStore(t *testing.T) {
	for _, k := range []string{"GEMINI_KEY", "DATABASE_URL", "SQLITE_PATH", "STORE_DRIVER"} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--log-level", "disabled"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	assert.Error(t, Execute())
	assert.Contains(t, out.String(), "ERRO")
}
