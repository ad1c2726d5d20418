package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/zhajinhua/internal/game"
)

// Config is the complete server configuration.
type Config struct {
	Server     ServerSettings    `hcl:"server,block"`
	Rooms      []RoomConfig      `hcl:"room,block"`
	Commentary *CommentaryConfig `hcl:"commentary,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomConfig defines one pre-created room. Seats start as bots; joining
// players take bot seats over.
type RoomConfig struct {
	Name       string   `hcl:"name,label"`
	Ante       int      `hcl:"ante,optional"`
	StartChips int      `hcl:"start_chips,optional"`
	Difficulty string   `hcl:"difficulty,optional"`
	Bots       []string `hcl:"bots,optional"`
	AutoDeal   bool     `hcl:"auto_deal,optional"`
}

// CommentaryConfig points at the optional table-talk text service.
type CommentaryConfig struct {
	URL            string `hcl:"url"`
	Model          string `hcl:"model,optional"`
	Enabled        bool   `hcl:"enabled,optional"`
	TimeoutSeconds int    `hcl:"timeout_seconds,optional"`
}

// defaultBotNames seats the classic lineup when a room block names none.
var defaultBotNames = []string{"Li Wei", "Fat Brother", "Auntie Zhang", "Old Wang"}

// DefaultConfig returns the configuration used when no file is present:
// one auto-dealing room of four medium bots.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Rooms: []RoomConfig{
			{
				Name:       "main",
				Ante:       10,
				StartChips: 1000,
				Difficulty: "Medium",
				Bots:       defaultBotNames,
				AutoDeal:   true,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	if len(config.Rooms) == 0 {
		config.Rooms = DefaultConfig().Rooms
	}
	for i := range config.Rooms {
		applyRoomDefaults(&config.Rooms[i])
	}

	if config.Commentary != nil && config.Commentary.TimeoutSeconds == 0 {
		config.Commentary.TimeoutSeconds = 5
	}

	return &config, nil
}

func applyRoomDefaults(room *RoomConfig) {
	if room.Ante == 0 {
		room.Ante = 10
	}
	if room.StartChips == 0 {
		room.StartChips = 1000
	}
	if room.Difficulty == "" {
		room.Difficulty = "Medium"
	}
	if len(room.Bots) == 0 {
		room.Bots = defaultBotNames
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	for _, room := range c.Rooms {
		if room.Ante <= 0 {
			return fmt.Errorf("room %s: ante must be positive", room.Name)
		}
		if room.StartChips < room.Ante {
			return fmt.Errorf("room %s: start chips must cover the ante", room.Name)
		}
		if len(room.Bots) < 2 || len(room.Bots) > 4 {
			return fmt.Errorf("room %s: need between 2 and 4 seats", room.Name)
		}
		if _, err := game.ParseDifficulty(room.Difficulty); err != nil {
			return fmt.Errorf("room %s: %w", room.Name, err)
		}
	}

	if c.Commentary != nil && c.Commentary.Enabled && c.Commentary.URL == "" {
		return fmt.Errorf("commentary enabled without a url")
	}

	return nil
}

// GetServerAddress returns the full listen address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
