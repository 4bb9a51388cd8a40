package main

import (
	"fmt"
	"os"

	jsonParser "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the daemon configuration. Defaults are merged with an
// optional JSON config file; command-line flags override both.
type Config struct {
	// Bind is the HTTP listen address.
	Bind string `koanf:"bind" json:"bind"`
	// Device is the CEC character device to open, empty for the first
	// adapter found.
	Device string `koanf:"device" json:"device"`
	// OSDName announced on the bus when claiming a logical address.
	OSDName string `koanf:"osd_name" json:"osd_name"`
	// History is how many bus messages the daemon keeps for /api/messages.
	History int `koanf:"history" json:"history"`

	MQTT MQTTConfig `koanf:"mqtt" json:"mqtt"`
}

// MQTTConfig configures the optional MQTT bridge. The bridge is disabled
// when Broker is empty.
type MQTTConfig struct {
	// Broker URL, e.g. "tcp://localhost:1883".
	Broker   string `koanf:"broker" json:"broker"`
	ClientID string `koanf:"client_id" json:"client_id"`
	Username string `koanf:"username" json:"username"`
	Password string `koanf:"password" json:"password"`
	// Prefix is the topic prefix, e.g. "cec" publishes to cec/message
	// and cec/event and listens on cec/transmit.
	Prefix string `koanf:"prefix" json:"prefix"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Bind:    ":8080",
		OSDName: "cecd",
		History: 100,
		MQTT: MQTTConfig{
			ClientID: "cecd",
			Prefix:   "cec",
		},
	}
}

// LoadConfig merges the defaults with the JSON file at path. An empty
// path skips the file; a missing file at an explicit path is an error.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("loading default config: %w", err)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), jsonParser.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.History < 1 {
		cfg.History = 1
	}
	return cfg, nil
}
