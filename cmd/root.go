package cmd

import (
	"fmt"
	"os"

	"capnarrative/internal/config"
	"capnarrative/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	// configFile overrides the layered user/project configuration lookup.
	configFile string
	// debug forces debug logging regardless of configuration.
	debug bool

	// cfg is populated before any subcommand runs.
	cfg config.CapnarrativeConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capnarrative",
	Short: "Render FHIR CapabilityStatements as human-readable narratives",
	Long: `capnarrative turns a FHIR CapabilityStatement into the XHTML narrative
a server publishes alongside it: a summary of the RESTful interface and a table
of the interactions each resource type supports.

Statements can be read from files, standard input, a FHIR server's /metadata
endpoint or a Kubernetes ConfigMap.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unreadable sources, invalid statements)
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "capnarrative version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadConfigFile(configFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	if debug {
		level = logging.LevelDebug
	}
	// stdout carries rendered output and the MCP stdio transport
	logging.InitForCLI(level, os.Stderr)
	return nil
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is layered ~/.config/capnarrative/config.yaml and ./.capnarrative/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
