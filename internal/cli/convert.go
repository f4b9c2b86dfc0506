package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ytget/audio-converter/internal/convert"
	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/output"
	"github.com/ytget/audio-converter/internal/platform"
	"github.com/ytget/audio-converter/internal/session"
)

const (
	reportText = "text"
	reportYAML = "yaml"
)

var (
	// ErrConversionFailed is returned when at least one file of the batch failed
	ErrConversionFailed = errors.New("conversion failed")

	// ErrNothingToConvert is returned when none of the arguments was accepted
	ErrNothingToConvert = errors.New("no supported audio files given")
)

type convertOptions struct {
	format    string
	outputDir string
	report    string
}

func newConvertCmd(root *rootOptions, deps *Dependencies) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [flags] FILE|DIR...",
		Short: "Convert audio files without opening the window",
		Long: `Convert audio files without opening the window.

Directories are expanded to the supported audio files directly inside them.
Files are converted one after another. A failed file is reported and the
batch continues with the next one.`,
		Example: `  audio-converter convert -f flac -o ./out song.mp3 take.wav
  audio-converter convert -f m4a -o ~/Music/converted ~/Music/raw
  audio-converter convert -o out --report yaml *.ogg`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return model.FormatNames(), cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.report != reportText && opts.report != reportYAML {
				return fmt.Errorf("invalid report %q: must be %s or %s", opts.report, reportText, reportYAML)
			}

			format := root.cfg.DefaultFormat
			if cmd.Flags().Changed("format") {
				parsed, err := model.ParseFormat(opts.format)
				if err != nil {
					return err
				}
				format = parsed
			}

			sess, err := prepareSession(cmd.ErrOrStderr(), format, opts.outputDir, args)
			if err != nil {
				return err
			}

			worker := convert.NewWorker(deps.NewCodec(root.cfg.FFmpegPath))
			batch, err := worker.Start(cmd.Context(), sess.Snapshot())
			if err != nil {
				return err
			}

			f := output.NewFormatter(cmd.OutOrStdout())
			for outcome := range batch.Outcomes {
				if opts.report == reportText {
					f.Outcome(outcome)
				}
			}
			summary := batch.Wait()

			if opts.report == reportYAML {
				if err := writeYAMLReport(cmd.OutOrStdout(), summary); err != nil {
					return err
				}
			} else {
				f.Summary(summary)
			}

			switch {
			case summary.Cancelled:
				return fmt.Errorf("stopped after %d of %d files: %w",
					summary.Total(), sess.Len(), cmd.Context().Err())
			case summary.HasErrors():
				return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, summary.Failed, summary.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "",
		"target format: "+strings.Join(model.FormatNames(), ", ")+" (default from config)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory, created if missing")
	cmd.Flags().StringVar(&opts.report, "report", reportText, "report style: text or yaml")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagDirname("output")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return model.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("report", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{reportText, reportYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// prepareSession builds the session the same way the window does: the output
// directory is checked first, then every argument goes through intake.
// Skipped arguments are reported on errOut.
func prepareSession(errOut io.Writer, format model.Format, outputDir string, args []string) (*session.Session, error) {
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return nil, err
	}

	sess := session.New(format)
	if err := sess.SetOutputDirectory(outputDir); err != nil {
		return nil, err
	}

	f := output.NewFormatter(errOut)
	paths := expandArgs(f, args)
	result := sess.AddAll(paths)
	for _, path := range result.Unsupported {
		f.Skipped(path, session.ErrUnsupportedFile.Error())
	}
	for _, path := range result.Duplicates {
		f.Skipped(path, session.ErrDuplicateFile.Error())
	}
	slog.Debug("intake finished", "accepted", len(result.Accepted), "rejected", result.Rejected())

	if sess.Len() == 0 {
		return nil, ErrNothingToConvert
	}
	return sess, nil
}

// expandArgs replaces directories with the supported files inside them.
// Unreadable arguments are reported and dropped.
func expandArgs(f *output.Formatter, args []string) []string {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			f.Skipped(arg, "not found")
			continue
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := platform.ListSupportedFiles(arg)
		if err != nil {
			f.Skipped(arg, err.Error())
			continue
		}
		if len(files) == 0 {
			f.Skipped(arg, "no supported audio files")
		}
		paths = append(paths, files...)
	}
	return paths
}

func writeYAMLReport(w io.Writer, summary model.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return enc.Close()
}
