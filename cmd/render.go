package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"capnarrative/internal/config"
	"capnarrative/internal/renderer"
	"capnarrative/internal/source"
	"capnarrative/internal/textview"
	"capnarrative/internal/xhtml"
	"capnarrative/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// For mocking in tests
var writeClipboard = clipboard.WriteAll

type renderOptions struct {
	prefix    string
	output    string
	outFile   string
	clipboard bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a CapabilityStatement",
		Long: `Render a CapabilityStatement as an XHTML narrative fragment, or as
terminal tables with --output text.

The source is one of:
  -                                   read from standard input
  https://server/fhir                 fetch {base}/metadata
  configmap://[namespace/]name[/key]  read a Kubernetes ConfigMap entry
  path/to/statement.json              read a JSON or YAML file

Only the first rest entry of the statement is rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Prefix prepended to profile references (default from config rendering.prefix)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format (html, text)")
	cmd.Flags().StringVar(&opts.outFile, "out-file", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "Also copy the HTML narrative to the clipboard")

	return cmd
}

func runRender(cmd *cobra.Command, ref string, opts *renderOptions) error {
	prefix := cfg.Rendering.Prefix
	if cmd.Flags().Changed("prefix") {
		prefix = opts.prefix
	}
	format := cfg.Output.Format
	if opts.output != "" {
		format = config.OutputFormat(opts.output)
	}
	if format == "" {
		format = config.OutputFormatHTML
	}

	cs, err := source.Open(cmd.Context(), ref, sourceOptions(cmd))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case config.OutputFormatHTML:
		x := xhtml.NewFragment()
		registry := renderer.NewDefaultRegistry(renderer.NewRenderingContext(prefix))
		if _, err := registry.RenderResource(x, cs); err != nil {
			return fmt.Errorf("failed to render %s: %w", cs.Present(), err)
		}
		if err := x.RenderChildren(&buf); err != nil {
			return err
		}
		buf.WriteString("\n")
	case config.OutputFormatText:
		if opts.clipboard {
			return fmt.Errorf("--clipboard requires html output")
		}
		if err := textview.Render(&buf, cs, textview.Options{Prefix: prefix, Width: cfg.Output.Width}); err != nil {
			return fmt.Errorf("failed to render %s: %w", cs.Present(), err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	if opts.clipboard {
		if err := writeClipboard(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		logging.Info("Render", "Copied narrative for %s to clipboard", cs.Present())
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.outFile != "" {
		f, err := os.Create(opts.outFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.outFile, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if opts.outFile != "" {
		logging.Info("Render", "Wrote narrative for %s to %s", cs.Present(), opts.outFile)
	}
	return nil
}

// sourceOptions maps configuration onto source loading options.
func sourceOptions(cmd *cobra.Command) source.Options {
	return source.Options{
		Stdin:            cmd.InOrStdin(),
		RetryMax:         cfg.HTTP.Retries(),
		Timeout:          cfg.HTTP.Timeout,
		KubeContext:      cfg.Kubernetes.Context,
		DefaultNamespace: cfg.Kubernetes.Namespace,
		DefaultKey:       cfg.Kubernetes.Key,
	}
}
