package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/billforge/billforge/pkg/assemble"
	"github.com/billforge/billforge/pkg/manifest"
	"github.com/billforge/billforge/pkg/story"
)

// newInspectCmd creates the inspect command, which prints the assembled story
// as JSON without rendering anything. Useful for debugging manifests and for
// feeding external renderers.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "Print the assembled invoice story as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0])
		},
	}
}

func runInspect(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	m, err := manifest.Load(input)
	if err != nil {
		return err
	}
	doc, err := m.Document()
	if err != nil {
		return err
	}

	blocks, stamp := assemble.Assemble(doc)
	logger.Debugf("Assembled %d blocks (stamp: %v)", len(blocks), stamp != nil)

	data, err := story.MarshalStory(blocks)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
