// Package config loads the settings for a climate run.
package config

import (
	"fmt"
	"path/filepath"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	Close() error
}

// Load reads the configuration file at path. An empty path yields the
// defaults.
func Load(path string) (*ConfigData, error) {
	if path == "" {
		return Default(), nil
	}

	filename, _ := filepath.Abs(path)

	var provider ConfigProvider = NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", filename, err)
	}

	return cfgData, nil
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Century        int            `json:"century"`
	LeapDayInYears bool           `json:"leap_day_in_years"`
	Output         OutputData     `json:"output"`
	Storage        StorageData    `json:"storage,omitempty"`
	RESTServer     RESTServerData `json:"rest,omitempty"`
}

// OutputData holds settings for the output file
type OutputData struct {
	Format string `json:"format,omitempty"`
}

// StorageData holds the configuration for the optional storage sinks
type StorageData struct {
	SQLite      *SQLiteData      `json:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

type SQLiteData struct {
	Path string `json:"path"`
}

type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// RESTServerData holds the configuration for the climate REST server
type RESTServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

const (
	defaultCentury    = 1900
	defaultListenAddr = "0.0.0.0"
	defaultHTTPPort   = 8080
)

// Default returns the configuration used when no config file is given.
func Default() *ConfigData {
	return &ConfigData{
		Century: defaultCentury,
		Output:  OutputData{Format: "legacy"},
		RESTServer: RESTServerData{
			ListenAddr: defaultListenAddr,
			Port:       defaultHTTPPort,
		},
	}
}

// Validate fills unset fields with defaults and rejects impossible values.
func (c *ConfigData) Validate() error {
	if c.Century == 0 {
		c.Century = defaultCentury
	}
	if c.Century < 0 || c.Century%100 != 0 {
		return fmt.Errorf("century must be a positive multiple of 100, got %d", c.Century)
	}

	if c.Output.Format == "" {
		c.Output.Format = "legacy"
	}

	if c.Storage.SQLite != nil && c.Storage.SQLite.Path == "" {
		return fmt.Errorf("storage.sqlite requires a path")
	}
	if c.Storage.TimescaleDB != nil && c.Storage.TimescaleDB.ConnectionString == "" {
		return fmt.Errorf("storage.timescaledb requires a connection-string")
	}

	if c.RESTServer.ListenAddr == "" {
		c.RESTServer.ListenAddr = defaultListenAddr
	}
	if c.RESTServer.Port == 0 {
		c.RESTServer.Port = defaultHTTPPort
	}
	if (c.RESTServer.Cert == "") != (c.RESTServer.Key == "") {
		return fmt.Errorf("rest.cert and rest.key must be set together")
	}

	return nil
}
