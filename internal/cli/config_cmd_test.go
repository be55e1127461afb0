package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out := mustRunCLI(t, "config", "init", "--backend", "sqlite")
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, "Created .gitignore")

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)

	gitignore, err := os.ReadFile(filepath.Join(home, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(gitignore))

	_, err = runCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out = mustRunCLI(t, "config", "init", "--force")
	assert.NotContains(t, out, "Created .gitignore", "existing .gitignore is preserved")
}

func TestConfigInit_InvalidBackend(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "init", "--backend", "postgres")
	require.ErrorIs(t, err, config.ErrInvalidBackend)
}

func TestConfigSetGet(t *testing.T) {
	setupCLITest(t)

	out := mustRunCLI(t, "config", "set", "profile.monthly_goal", "400")
	assert.Contains(t, out, "Set profile.monthly_goal = 400")

	config.ResetGlobalConfigForTest()
	out = mustRunCLI(t, "config", "get", "profile.monthly_goal")
	assert.Equal(t, "400", strings.TrimSpace(out))

	_, err := runCLI(t, "config", "set", "profile.nickname", "x")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = runCLI(t, "config", "set", "output.default_format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)

	_, err = runCLI(t, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigSet_DoesNotPersistEnvironment(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv(config.EnvMonthlyGoal, "123")

	mustRunCLI(t, "config", "set", "profile.name", "Sam")

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Sam", cfg.Profile.Name)
	assert.InDelta(t, config.DefaultMonthlyGoal, cfg.Profile.MonthlyGoal, 1e-9)
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvMonthlyGoal, "321")
	config.ResetGlobalConfigForTest()

	out := mustRunCLI(t, "config", "list", "-o", "json")
	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &values), out)
	assert.Equal(t, "321", values["profile.monthly_goal"])
	assert.Len(t, values, len(config.Keys()))

	out = mustRunCLI(t, "config", "list", "-o", "table")
	assert.Contains(t, out, "storage.backend")
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out := mustRunCLI(t, "config", "validate", "--verbose")
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "default 50/80/100% actual")

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("dashboard:\n  trend_months: 0\n"), 0o600))
	_, err := runCLI(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrOutOfRange)
}
