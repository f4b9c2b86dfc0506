package cli

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/audio-converter/internal/output"
	"github.com/ytget/audio-converter/internal/platform"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show tags or stream details of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details := make([]string, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					details[i] = platform.Describe(path)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			f := output.NewFormatter(cmd.OutOrStdout())
			for i, path := range args {
				f.FileInfo(filepath.Base(path), details[i])
			}
			return nil
		},
	}
}
