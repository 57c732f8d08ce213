package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_KeepsDefaults(t *testing.T) {
	c, err := LoadFromBytes([]byte("Server:\n  Port: 8080\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 2, c.Spell.MaxDistance)
	assert.Equal(t, 5, c.Spell.MaxSuggestions)
	assert.Equal(t, "auto", c.Spell.ScanPolicy)
	assert.Equal(t, 4000, c.Context.BudgetTokens)
	assert.Equal(t, 50, c.Context.MaxTurns)
	assert.Equal(t, ProviderOpenRouter, c.Provider.Type)
	assert.InDelta(t, 0.7, c.Provider.Temperature, 1e-9)
	assert.NoError(t, c.Validate())
}

func TestLoadFromBytes_ExpandsEnv(t *testing.T) {
	t.Setenv("THINK_TEST_PORT", "4100")
	t.Setenv("THINK_TEST_KEY", "sk-test")
	t.Setenv("THINK_TEST_EMPTY", "")

	yaml := `
Server:
  Port: ${THINK_TEST_PORT:-3000}
Spell:
  ScanPolicy: ${THINK_TEST_MISSING:-bktree}
Provider:
  APIKey: ${THINK_TEST_KEY}
  Model: ${THINK_TEST_EMPTY:-gpt-4o-mini}
`
	c, err := LoadFromBytes([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, 4100, c.Server.Port)
	assert.Equal(t, "bktree", c.Spell.ScanPolicy)
	assert.Equal(t, "sk-test", c.Provider.APIKey)
	assert.Equal(t, "gpt-4o-mini", c.Provider.Model)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	_, err := LoadFromBytes([]byte("Server: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadFile_Overlays(t *testing.T) {
	c, err := LoadFromBytes([]byte("Provider:\n  Model: base-model\n  Type: openai\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Provider:\n  Model: local-model\n"), 0644))
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, "local-model", c.Provider.Model)
	assert.Equal(t, ProviderOpenAI, c.Provider.Type, "keys absent from the override are kept")

	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Server.Port = 0
	c.Spell.ScanPolicy = "ngram"
	c.Context.ResponseReserve = 5000
	c.Provider.Type = "bard"
	c.Provider.TopP = 0

	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{"Server.Port", "Spell.ScanPolicy", "Context.ResponseReserve", "Provider.Type", "Provider.TopP"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_NegativeReserve(t *testing.T) {
	c := DefaultConfig()
	c.Context.ResponseReserve = -1
	assert.ErrorContains(t, c.Validate(), "must not be negative")
}
