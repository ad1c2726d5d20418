package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	require.Len(t, cfg.Rooms, 1)
	assert.Equal(t, "main", cfg.Rooms[0].Name)
	assert.Equal(t, 10, cfg.Rooms[0].Ante)
	assert.Equal(t, 1000, cfg.Rooms[0].StartChips)
	assert.Len(t, cfg.Rooms[0].Bots, 4)
	assert.True(t, cfg.Rooms[0].AutoDeal)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigParsesHCL(t *testing.T) {
	path := writeConfigFile(t, `
server {
  address = "0.0.0.0"
  port    = 9000
  log_level = "debug"
}

room "high-stakes" {
  ante        = 50
  start_chips = 5000
  difficulty  = "Hard"
  bots        = ["Li Wei", "Old Wang"]
  auto_deal   = true
}

commentary {
  url     = "http://localhost:5001/comment"
  enabled = true
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	require.Len(t, cfg.Rooms, 1)
	room := cfg.Rooms[0]
	assert.Equal(t, "high-stakes", room.Name)
	assert.Equal(t, 50, room.Ante)
	assert.Equal(t, 5000, room.StartChips)
	assert.Equal(t, "Hard", room.Difficulty)
	assert.Equal(t, []string{"Li Wei", "Old Wang"}, room.Bots)

	require.NotNil(t, cfg.Commentary)
	assert.True(t, cfg.Commentary.Enabled)
	assert.Equal(t, 5, cfg.Commentary.TimeoutSeconds, "timeout should default when omitted")
}

func TestLoadConfigRoomDefaults(t *testing.T) {
	path := writeConfigFile(t, `
room "casual" {
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	room := cfg.Rooms[0]
	assert.Equal(t, 10, room.Ante)
	assert.Equal(t, 1000, room.StartChips)
	assert.Equal(t, "Medium", room.Difficulty)
	assert.Len(t, room.Bots, 4)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	path := writeConfigFile(t, `room "broken" { ante = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "zero ante",
			mutate:  func(c *Config) { c.Rooms[0].Ante = 0 },
			wantErr: "ante must be positive",
		},
		{
			name:    "chips below ante",
			mutate:  func(c *Config) { c.Rooms[0].StartChips = 5 },
			wantErr: "start chips must cover the ante",
		},
		{
			name:    "too few seats",
			mutate:  func(c *Config) { c.Rooms[0].Bots = []string{"Solo"} },
			wantErr: "between 2 and 4 seats",
		},
		{
			name:    "unknown difficulty",
			mutate:  func(c *Config) { c.Rooms[0].Difficulty = "Impossible" },
			wantErr: "difficulty",
		},
		{
			name: "commentary enabled without url",
			mutate: func(c *Config) {
				c.Commentary = &CommentaryConfig{Enabled: true}
			},
			wantErr: "commentary enabled without a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
