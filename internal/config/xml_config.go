// Package config provides XML-based configuration management for
// on-premise deployment.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"RFMCaseSubmit"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Storage configuration
	Storage StorageConfig `xml:"Storage"`

	// Persistence configuration
	Persistence PersistenceConfig `xml:"Persistence"`

	// Object store configuration
	ObjectStore ObjectStoreConfig `xml:"ObjectStore"`

	// Processing configuration
	Processing ProcessingConfig `xml:"Processing"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	DataDirectory    string `xml:"DataDirectory"`
	UploadsDirectory string `xml:"UploadsDirectory"`
	MaxUploadSize    string `xml:"MaxUploadSize"`
}

// PersistenceConfig contains the intake database settings
type PersistenceConfig struct {
	Enabled      bool   `xml:"Enabled"`
	DatabaseFile string `xml:"DatabaseFile"`
}

// ObjectStoreConfig contains the S3-compatible mirror settings
type ObjectStoreConfig struct {
	Enabled   bool   `xml:"Enabled"`
	Endpoint  string `xml:"Endpoint"`
	AccessKey string `xml:"AccessKey"`
	SecretKey string `xml:"SecretKey"`
	Bucket    string `xml:"Bucket"`
	UseSSL    bool   `xml:"UseSSL"`
}

// ProcessingConfig contains upload processing settings
type ProcessingConfig struct {
	CaseTimeoutMinutes     int `xml:"CaseTimeoutMinutes"`
	CleanupIntervalMinutes int `xml:"CleanupIntervalMinutes"`
	JobMaxAgeMinutes       int `xml:"JobMaxAgeMinutes"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 60,
			IdleTimeout:  120,
			BodyLimit:    "100M",
		},
		Storage: StorageConfig{
			DataDirectory:    "./data",
			UploadsDirectory: "./data/uploads",
			MaxUploadSize:    "100M",
		},
		Persistence: PersistenceConfig{
			Enabled:      true,
			DatabaseFile: "./data/cases.db",
		},
		ObjectStore: ObjectStoreConfig{
			Enabled:  false,
			Endpoint: "localhost:9000",
			Bucket:   "case-documents",
			UseSSL:   false,
		},
		Processing: ProcessingConfig{
			CaseTimeoutMinutes:     30,
			CleanupIntervalMinutes: 5,
			JobMaxAgeMinutes:       60,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &AppConfig{}
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- RFM Case Submit Portal Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	// PORT override
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// DATA_DIR override
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}

	// Object store credentials stay out of the config file when the
	// environment provides them.
	if accessKey := os.Getenv("OBJECT_STORE_ACCESS_KEY"); accessKey != "" {
		c.ObjectStore.AccessKey = accessKey
	}
	if secretKey := os.Getenv("OBJECT_STORE_SECRET_KEY"); secretKey != "" {
		c.ObjectStore.SecretKey = secretKey
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if !filepath.IsAbs(c.Storage.UploadsDirectory) {
		c.Storage.UploadsDirectory = filepath.Join(configDir, c.Storage.UploadsDirectory)
	}
	if !filepath.IsAbs(c.Persistence.DatabaseFile) {
		c.Persistence.DatabaseFile = filepath.Join(configDir, c.Persistence.DatabaseFile)
	}
}

// GetDataDir returns the absolute data directory path
func (c *AppConfig) GetDataDir() string {
	return c.Storage.DataDirectory
}

// GetUploadDir returns the absolute uploads directory path
func (c *AppConfig) GetUploadDir() string {
	return c.Storage.UploadsDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.UploadsDirectory,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
