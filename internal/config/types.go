package config

import (
	"time"
)

// CapnarrativeConfig is the top-level configuration structure for capnarrative.
type CapnarrativeConfig struct {
	Rendering  RenderingConfig  `yaml:"rendering"`
	Output     OutputConfig     `yaml:"output"`
	Kubernetes KubernetesConfig `yaml:"kubernetes"`
	HTTP       HTTPConfig       `yaml:"http"`
	MCP        MCPConfig        `yaml:"mcp"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RenderingConfig controls the narrative itself.
type RenderingConfig struct {
	Prefix string `yaml:"prefix,omitempty"` // Prepended to profile references, e.g. "https://hl7.org/fhir/"
}

// OutputFormat selects how a rendered statement is printed.
type OutputFormat string

const (
	OutputFormatHTML OutputFormat = "html"
	OutputFormatText OutputFormat = "text"
)

// OutputConfig controls how the CLI prints results.
type OutputConfig struct {
	Format OutputFormat `yaml:"format,omitempty"`
	Width  int          `yaml:"width,omitempty"` // Terminal width for text output; long cells are truncated
}

// KubernetesConfig is used when statements are read from ConfigMaps.
type KubernetesConfig struct {
	Context   string `yaml:"context,omitempty"`   // kubeconfig context, empty for current
	Namespace string `yaml:"namespace,omitempty"` // default namespace for configmap:// references
	Key       string `yaml:"key,omitempty"`       // default data key holding the statement
}

// HTTPConfig is used when statements are fetched from a FHIR server's /metadata endpoint.
type HTTPConfig struct {
	// RetryMax is a pointer so an explicit 0 can disable retries; nil keeps the lower layer.
	RetryMax *int          `yaml:"retryMax,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Retries returns the configured retry count, 0 if unset.
func (h HTTPConfig) Retries() int {
	if h.RetryMax == nil {
		return 0
	}
	return *h.RetryMax
}

// IntPtr returns a pointer to v, for filling optional integer fields.
func IntPtr(v int) *int {
	return &v
}

const (
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
)

// MCPConfig defines how 'capnarrative serve' exposes the renderer.
type MCPConfig struct {
	Transport string `yaml:"transport,omitempty"` // stdio or sse
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}
