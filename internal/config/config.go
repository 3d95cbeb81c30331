// Package config loads the CLI's connection profile from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pgadapt/pgadapt/pkg/adapter"
)

// Profile is the on-disk connection profile read by the CLI.
type Profile struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	Database         string `yaml:"database"`
	SchemaSearchPath string `yaml:"schema_search_path"`
	Encoding         string `yaml:"encoding"`
	MinMessages      string `yaml:"min_messages"`
	SSLMode          string `yaml:"sslmode"`
}

// Load reads and parses the profile at the given path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	profile := &Profile{
		Host: "localhost",
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return profile, nil
}

// ConnectionConfig converts the profile to an adapter connection
// configuration.
func (p *Profile) ConnectionConfig() adapter.ConnectionConfig {
	return adapter.ConnectionConfig{
		ConnectionType:   "postgres",
		Host:             p.Host,
		Port:             p.Port,
		Username:         p.Username,
		Password:         p.Password,
		DatabaseName:     p.Database,
		SchemaSearchPath: p.SchemaSearchPath,
		ClientEncoding:   p.Encoding,
		MinMessages:      p.MinMessages,
		SSL:              p.SSLMode != "" && p.SSLMode != "disable",
		SSLMode:          p.SSLMode,
	}
}
