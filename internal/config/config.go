package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"blackjack-server/internal/util"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Room struct {
		// MaxPlayers is the seat capacity of a single room
		MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
		// StartRoundDelay is the pause in seconds between consecutive rounds
		StartRoundDelay int `yaml:"startRoundDelay" envconfig:"start_round_delay"`
		// TurnTimeout bounds how long a round waits on a single prompt, in
		// seconds. Zero disables the timeout.
		TurnTimeout int `yaml:"turnTimeout" envconfig:"turn_timeout"`
		// RemoveBrokePlayers kicks players with no money between rounds
		RemoveBrokePlayers bool `yaml:"removeBrokePlayers" envconfig:"remove_broke_players"`
	}
	Game struct {
		// DealerStandsAt is the hand value at which the dealer stops drawing
		DealerStandsAt int `yaml:"dealerStandsAt" envconfig:"dealer_stands_at"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; env vars still apply on top of
// the defaults.
func Load() error {
	config = Config{}

	configFile := util.Getenv("BLACKJACK_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		err = yaml.NewDecoder(file).Decode(&config)
		_ = file.Close()
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("blackjack", &config); err != nil {
		return err
	}

	setDefaults(&config)

	config.loaded = true
	return nil
}

func setDefaults(c *Config) {
	if c.Room.MaxPlayers <= 0 {
		c.Room.MaxPlayers = 6
	}

	if c.Game.DealerStandsAt <= 0 {
		c.Game.DealerStandsAt = 17
	}
}
