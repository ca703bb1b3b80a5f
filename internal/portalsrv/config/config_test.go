package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "8176", Config().ServerPort)
	assert.Equal(t, "all", Config().Engine.MissingPatternPolicy)
	assert.Equal(t, 15, Config().Engine.ProximityMinutes)
	assert.Equal(t, 0.8, Config().Engine.DedupOverlapFraction)
	assert.Equal(t, 100, Config().Provider.PageSize)
}

func TestLoadConfigFile(t *testing.T) {
	content := `
server_port = "9001"

[database]
host = "db.internal"
dbname = "facilops_test"

[provider]
base_url = "https://scheduler.example.com/api"
token_url = "https://scheduler.example.com/oauth/token"
client_id = "portal"
client_secret = "secret"

[engine]
missing_pattern_policy = "none"
proximity_minutes = 10
`
	path := filepath.Join(t.TempDir(), "facilops.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9001", Config().ServerPort)
	assert.Equal(t, "db.internal", Config().DB.Host)
	assert.Equal(t, "none", Config().Engine.MissingPatternPolicy)
	assert.Equal(t, 10, Config().Engine.ProximityMinutes)
	// untouched keys keep defaults
	assert.Equal(t, 0.8, Config().Engine.DedupOverlapFraction)
	assert.Contains(t, Config().DB.Dsn(), "dbname=facilops_test")

	t.Cleanup(func() { _ = LoadConfig("") })
}

func TestLoadConfigRejectsBadPolicy(t *testing.T) {
	content := `
[engine]
missing_pattern_policy = "sometimes"
`
	path := filepath.Join(t.TempDir(), "facilops.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	assert.Error(t, LoadConfig(path))
}
