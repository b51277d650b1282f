package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

// mockPaths points both config layers into tempDir and restores them afterwards.
func mockPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "user", userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockPaths(t, t.TempDir())

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.NoError(t, loadedConfig.Validate())
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "user", userConfigDir), configFileName, `
rendering:
  prefix: "https://hl7.org/fhir/"
http:
  timeout: 5s
`)

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://hl7.org/fhir/", loadedConfig.Rendering.Prefix)
	assert.Equal(t, 5*time.Second, loadedConfig.HTTP.Timeout)
	// untouched values keep their defaults
	assert.Equal(t, 3, loadedConfig.HTTP.Retries())
	assert.Equal(t, OutputFormatHTML, loadedConfig.Output.Format)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "user", userConfigDir), configFileName, `
rendering:
  prefix: "https://user.example/"
kubernetes:
  namespace: user-ns
`)
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, `
rendering:
  prefix: "https://project.example/"
mcp:
  transport: sse
  port: 9000
`)

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://project.example/", loadedConfig.Rendering.Prefix)
	assert.Equal(t, "user-ns", loadedConfig.Kubernetes.Namespace)
	assert.Equal(t, MCPTransportSSE, loadedConfig.MCP.Transport)
	assert.Equal(t, 9000, loadedConfig.MCP.Port)
	assert.Equal(t, "localhost", loadedConfig.MCP.Host)
}

func TestLoadConfig_ExplicitZeroRetries(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "user", userConfigDir), configFileName, `
http:
  retryMax: 5
`)
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, `
http:
  retryMax: 0
`)

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, loadedConfig.HTTP.RetryMax)
	assert.Equal(t, 0, loadedConfig.HTTP.Retries())
	assert.Equal(t, 3, GetDefaultConfig().HTTP.Retries(), "defaults are not mutated by merging")
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, "rendering: [unterminated")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading project config")
}

func TestLoadConfigFile(t *testing.T) {
	path := createTempConfigFile(t, t.TempDir(), "custom.yaml", `
output:
  format: text
  width: 80
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatText, cfg.Output.Format)
	assert.Equal(t, 80, cfg.Output.Width)
	assert.Equal(t, "default", cfg.Kubernetes.Namespace)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CapnarrativeConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*CapnarrativeConfig) {}},
		{name: "bad format", mutate: func(c *CapnarrativeConfig) { c.Output.Format = "pdf" }, wantErr: "unsupported output format"},
		{name: "bad transport", mutate: func(c *CapnarrativeConfig) { c.MCP.Transport = "grpc" }, wantErr: "unsupported MCP transport"},
		{name: "negative retries", mutate: func(c *CapnarrativeConfig) { c.HTTP.RetryMax = IntPtr(-1) }, wantErr: "retryMax"},
		{name: "bad log level", mutate: func(c *CapnarrativeConfig) { c.Logging.Level = "loud" }, wantErr: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetUserConfigDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return "/home/test", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/test", ".config", "capnarrative"), dir)
}

func TestGetUserConfigPath_UsesUserConfigDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return "/home/test", nil }

	path, err := getUserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/test", ".config", "capnarrative", "config.yaml"), path)
}
