// Package config provides configuration management for capnarrative.
//
// Configuration is loaded from YAML files and merged in order, with later
// sources overriding earlier ones:
//
//  1. Default configuration (compiled in)
//  2. User configuration (~/.config/capnarrative/config.yaml)
//  3. Project configuration (./.capnarrative/config.yaml)
//
// A value left empty in an overlay keeps the value from the layer below.
//
// # Configuration Structure
//
//	rendering:
//	  prefix: "https://hl7.org/fhir/"   # prepended to profile references
//	output:
//	  format: html                      # html or text
//	  width: 120                        # text output truncation width
//	kubernetes:
//	  context: ""                       # kubeconfig context, empty for current
//	  namespace: fhir
//	  key: capabilitystatement.json
//	http:
//	  retryMax: 3
//	  timeout: 30s
//	mcp:
//	  transport: stdio                  # stdio or sse
//	  host: localhost
//	  port: 8091
//	logging:
//	  level: info
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	ctx := renderer.NewRenderingContext(cfg.Rendering.Prefix)
package config
