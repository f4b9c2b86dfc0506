package cli

import (
	"github.com/spf13/cobra"

	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/output"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "formats",
		Short:             "List the supported audio formats",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			f := output.NewFormatter(cmd.OutOrStdout())
			for _, format := range model.Formats() {
				f.Format(format)
			}
		},
	}
}
