package config

import (
	"fmt"
	"os"
	"path/filepath"

	"capnarrative/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/capnarrative"
	projectConfigDir = ".capnarrative"
	configFileName   = "config.yaml"
)

// LoadConfig loads the capnarrative configuration by layering default, user, and project settings.
func LoadConfig() (CapnarrativeConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = overlayFromFile(config, userConfigPath)
		if err != nil {
			return CapnarrativeConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = overlayFromFile(config, projectConfigPath)
		if err != nil {
			return CapnarrativeConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	return config, nil
}

// LoadConfigFile layers a single explicit file over the defaults.
func LoadConfigFile(path string) (CapnarrativeConfig, error) {
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return CapnarrativeConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(GetDefaultConfig(), overlay), nil
}

func overlayFromFile(base CapnarrativeConfig, path string) (CapnarrativeConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return CapnarrativeConfig{}, err
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a CapnarrativeConfig from a YAML file.
func loadConfigFromFile(filePath string) (CapnarrativeConfig, error) {
	var config CapnarrativeConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return CapnarrativeConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return CapnarrativeConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base untouched, except for pointer fields, where
// only nil does.
func mergeConfigs(base, overlay CapnarrativeConfig) CapnarrativeConfig {
	merged := base

	if overlay.Rendering.Prefix != "" {
		merged.Rendering.Prefix = overlay.Rendering.Prefix
	}

	if overlay.Output.Format != "" {
		merged.Output.Format = overlay.Output.Format
	}
	if overlay.Output.Width != 0 {
		merged.Output.Width = overlay.Output.Width
	}

	if overlay.Kubernetes.Context != "" {
		merged.Kubernetes.Context = overlay.Kubernetes.Context
	}
	if overlay.Kubernetes.Namespace != "" {
		merged.Kubernetes.Namespace = overlay.Kubernetes.Namespace
	}
	if overlay.Kubernetes.Key != "" {
		merged.Kubernetes.Key = overlay.Kubernetes.Key
	}

	if overlay.HTTP.RetryMax != nil {
		merged.HTTP.RetryMax = IntPtr(*overlay.HTTP.RetryMax)
	}
	if overlay.HTTP.Timeout != 0 {
		merged.HTTP.Timeout = overlay.HTTP.Timeout
	}

	if overlay.MCP.Transport != "" {
		merged.MCP.Transport = overlay.MCP.Transport
	}
	if overlay.MCP.Host != "" {
		merged.MCP.Host = overlay.MCP.Host
	}
	if overlay.MCP.Port != 0 {
		merged.MCP.Port = overlay.MCP.Port
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	return merged
}

// Validate rejects values the commands cannot act on.
func (c CapnarrativeConfig) Validate() error {
	switch c.Output.Format {
	case OutputFormatHTML, OutputFormatText:
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	switch c.MCP.Transport {
	case MCPTransportStdio, MCPTransportSSE:
	default:
		return fmt.Errorf("unsupported MCP transport %q", c.MCP.Transport)
	}
	if c.HTTP.Retries() < 0 {
		return fmt.Errorf("http.retryMax must not be negative")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
