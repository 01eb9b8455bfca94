package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billforge/billforge/pkg/assemble"
	"github.com/billforge/billforge/pkg/manifest"
	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/render/pdf"
	"github.com/billforge/billforge/pkg/render/term"
	"github.com/billforge/billforge/pkg/story"
)

const (
	formatPDF  = "pdf"  // rendered PDF document
	formatText = "text" // styled terminal preview on stdout
	formatJSON = "json" // assembled story as JSON
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output string // output file path; derived from the input when empty
	format string // output format: "pdf", "text", or "json"
}

// newGenerateCmd creates the generate command for rendering invoices.
// The default format is PDF; "text" previews the invoice on the terminal and
// "json" writes the assembled story for external renderers.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{format: formatPDF}

	cmd := &cobra.Command{
		Use:   "generate [manifest]",
		Short: "Render an invoice from a TOML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the manifest name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: pdf (default), text, json")

	return cmd
}

// validateFormat checks that the format is one of pdf, text, or json.
func validateFormat(f string) error {
	switch f {
	case formatPDF, formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be 'pdf', 'text', or 'json')", f)
	}
}

// outputPath derives the output file path. An explicit output wins;
// otherwise the manifest path with its extension swapped for ext.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

// runGenerate loads the manifest, assembles the invoice story, and renders it
// in the requested format. The text format writes to stdout; pdf and json
// write to the output path.
func runGenerate(ctx context.Context, input string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)
	logger.Infof("Generating invoice from %s", input)

	m, err := manifest.Load(input)
	if err != nil {
		return err
	}
	doc, err := m.Document()
	if err != nil {
		return err
	}
	logger.Debugf("Manifest loaded: %d items, %d transactions", len(m.Items), len(m.Transactions))

	switch opts.format {
	case formatText:
		req := assemble.Request(doc, "", m.Metadata(), render.Geometry{})
		return term.New(os.Stdout).Build(ctx, req)

	case formatJSON:
		blocks, _ := assemble.Assemble(doc)
		data, err := story.MarshalStory(blocks)
		if err != nil {
			return err
		}
		path := outputPath(opts.output, input, "json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		p.done(fmt.Sprintf("Generated %s", path))
		return nil

	default:
		path := outputPath(opts.output, input, "pdf")
		req := assemble.Request(doc, path, m.Metadata(), render.Geometry{})
		if err := pdf.New().Build(ctx, req); err != nil {
			return err
		}
		p.done(fmt.Sprintf("Generated %s", path))
		return nil
	}
}
