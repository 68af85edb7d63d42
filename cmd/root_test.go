package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"upload", "leads", "template", "serve", "config"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "leads-console", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestUploadCommand_Flags(t *testing.T) {
	for _, name := range []string{"file", "campaign-date", "immediate"} {
		flag := uploadCmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "upload should have --%s flag", name)
	}
}

func TestLeadsCommand_HasSubcommands(t *testing.T) {
	cmds := leadsCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"list", "toggle", "edit"} {
		assert.True(t, names[name], "leads should have subcommand %q", name)
	}
}

func TestLeadsListCommand_Flags(t *testing.T) {
	for _, name := range []string{"filter", "search", "date", "asc"} {
		flag := leadsListCmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "leads list should have --%s flag", name)
	}
	assert.Equal(t, "all", leadsListCmd.Flags().Lookup("filter").DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Contains(t, parsed, "webhook")
	assert.Contains(t, parsed, "server")
	assert.Contains(t, parsed, "log")

	// Refuses to clobber without --force.
	err = configInitCmd.RunE(configInitCmd, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"))
}

func TestNestDefault(t *testing.T) {
	root := map[string]any{}
	nestDefault(root, "server.port", 8080)
	nestDefault(root, "server.allowed_origins", []string{"*"})
	nestDefault(root, "log.level", "info")

	server, ok := root["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8080, server["port"])
	logSection, ok := root["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "info", logSection["level"])
}
