package config

import (
	"time"
)

// GetDefaultConfig returns the configuration capnarrative runs with when no
// file overrides it.
func GetDefaultConfig() CapnarrativeConfig {
	return CapnarrativeConfig{
		Rendering: RenderingConfig{
			Prefix: "",
		},
		Output: OutputConfig{
			Format: OutputFormatHTML,
			Width:  120,
		},
		Kubernetes: KubernetesConfig{
			Namespace: "default",
			Key:       "capabilitystatement.json",
		},
		HTTP: HTTPConfig{
			RetryMax: IntPtr(3),
			Timeout:  30 * time.Second,
		},
		MCP: MCPConfig{
			Transport: MCPTransportStdio,
			Host:      "localhost",
			Port:      8091,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
