package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigCommand_PrintsEffectiveConfig(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("REPO_OWNER", "acme")
	cfgPath := writeConfig(t, dir, "issues:\n  keywords: [leak]\n")

	stdout, _, err := executeCommand(t, "config", "--config", cfgPath)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "acme/example-repo", out["repository"])
	assert.Equal(t, "(not set)", out["token"])
	issues := out["issues"].(map[string]interface{})
	assert.Equal(t, []interface{}{"leak"}, issues["keywords"])
	params := out["parameters"].(map[string]interface{})
	assert.Equal(t, "exact", params["mode"])
}

func TestConfigCommand_MasksToken(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MCP_GITHUB_TOKEN", "ghp_secretvalue")

	stdout, _, err := executeCommand(t, "config")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "ghp_secretvalue")

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "****", out["token"])
}

func TestConfigCommand_MalformedFile(t *testing.T) {
	dir := isolateEnv(t)
	cfgPath := writeConfig(t, dir, "parameters: [unclosed\n")

	_, _, err := executeCommand(t, "config", "--config", cfgPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
