package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "analyze", "schema"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestAnalyzeRequiresIncidentID(t *testing.T) {
	assert.Error(t, analyzeCmd.Args(analyzeCmd, nil))
	assert.Error(t, analyzeCmd.Args(analyzeCmd, []string{"a", "b"}))
	assert.NoError(t, analyzeCmd.Args(analyzeCmd, []string{"0b5e1f4c-3f7a-4c11-9d7e-2f1f6f0f5a10"}))
}

func TestServeFlagsDefaults(t *testing.T) {
	ensure, err := serveCmd.Flags().GetBool("ensure-schema")
	require.NoError(t, err)
	assert.True(t, ensure)

	port, err := serveCmd.Flags().GetString("port")
	require.NoError(t, err)
	assert.Empty(t, port)
}
