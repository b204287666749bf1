// Package config provides SDK configuration management.
// Priority: defaults < user config file < project config file < env
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment selects the service deployment the SDK talks to.
type Environment string

const (
	// Prod is the production deployment.
	Prod Environment = "prod"

	// QA is the quality-assurance deployment.
	QA Environment = "qa"

	// Dev is the development deployment.
	Dev Environment = "dev"
)

// Host returns the API host for the environment.
func (e Environment) Host() string {
	switch e {
	case QA:
		return "qa-api.bentley.com"
	case Dev:
		return "dev-api.bentley.com"
	default:
		return "api.bentley.com"
	}
}

// Valid reports whether the environment is one of the three deployments.
func (e Environment) Valid() bool {
	return e == Prod || e == QA || e == Dev
}

// Config holds all SDK configuration.
type Config struct {
	Version int `yaml:"version"`

	Environment Environment     `yaml:"environment"`
	HTTP        HTTPConfig      `yaml:"http"`
	Transfer    TransferConfig  `yaml:"transfer"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

// HTTPConfig controls the REST session.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"` // per-request timeout
}

// TransferConfig controls the bulk transfer core.
type TransferConfig struct {
	PoolCap         int           `yaml:"pool_cap"`          // hard cap on worker count
	SmallFileSize   int64         `yaml:"small_file_size"`   // threshold for pool sizing
	BlobConcurrency int           `yaml:"blob_concurrency"`  // per-blob parallelism
	MaxRetries      int           `yaml:"max_retries"`       // per-blob retry total
	TryTimeout      time.Duration `yaml:"try_timeout"`       // per-attempt timeout
}

// TelemetryConfig for optional OTLP trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version:     1,
		Environment: Prod,
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Transfer: TransferConfig{
			PoolCap:         32,
			SmallFileSize:   5 * 1024 * 1024, // 5 MiB
			BlobConcurrency: 16,
			MaxRetries:      20,
			TryTimeout:      60 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // Paths that were loaded
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{config: Default()}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()

	for _, path := range m.configPaths() {
		if err := m.loadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	m.loadEnv()

	if !m.config.Environment.Valid() {
		return fmt.Errorf("unknown environment %q", m.config.Environment)
	}
	return nil
}

// LoadFile loads a single explicit config file over the defaults.
func (m *Manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadFile(path); err != nil {
		return err
	}
	m.paths = append(m.paths, path)
	m.loadEnv()

	if !m.config.Environment.Valid() {
		return fmt.Errorf("unknown environment %q", m.config.Environment)
	}
	return nil
}

// configPaths returns config file paths in priority order.
func (m *Manager) configPaths() []string {
	var paths []string

	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/realitycloud/config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".realitycloud", "config.yaml"))
	}

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".realitycloud.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Environment != "" {
		m.config.Environment = src.Environment
	}
	if src.HTTP.Timeout != 0 {
		m.config.HTTP.Timeout = src.HTTP.Timeout
	}
	if src.Transfer.PoolCap != 0 {
		m.config.Transfer.PoolCap = src.Transfer.PoolCap
	}
	if src.Transfer.SmallFileSize != 0 {
		m.config.Transfer.SmallFileSize = src.Transfer.SmallFileSize
	}
	if src.Transfer.BlobConcurrency != 0 {
		m.config.Transfer.BlobConcurrency = src.Transfer.BlobConcurrency
	}
	if src.Transfer.MaxRetries != 0 {
		m.config.Transfer.MaxRetries = src.Transfer.MaxRetries
	}
	if src.Transfer.TryTimeout != 0 {
		m.config.Transfer.TryTimeout = src.Transfer.TryTimeout
	}
	if src.Telemetry.Enabled {
		m.config.Telemetry.Enabled = true
	}
	if src.Telemetry.Endpoint != "" {
		m.config.Telemetry.Endpoint = src.Telemetry.Endpoint
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("REALITYCLOUD_ENV"); v != "" {
		m.config.Environment = Environment(v)
	}
	if v := os.Getenv("REALITYCLOUD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			m.config.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("REALITYCLOUD_OTLP_ENDPOINT"); v != "" {
		m.config.Telemetry.Enabled = true
		m.config.Telemetry.Endpoint = v
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}

// Save writes the current config to the user config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".realitycloud")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644)
}
