package cli

import (
	"context"
	"io"
	"log/slog"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/ytget/audio-converter/internal/config"
	"github.com/ytget/audio-converter/internal/convert"
	"github.com/ytget/audio-converter/internal/ui"
)

// Dependencies are the side-effecting pieces the commands use
type Dependencies struct {
	// NewCodec builds the codec for an ffmpeg binary
	NewCodec func(ffmpegPath string) convert.Codec
	// RunGUI opens the desktop window and blocks until it is closed
	RunGUI   func(ctx context.Context, cfg *config.Config, version string)
	LookPath func(file string) (string, error)
}

// DefaultDependencies wires the real ffmpeg binary and the Fyne app
func DefaultDependencies() *Dependencies {
	newCodec := func(ffmpegPath string) convert.Codec {
		return convert.NewFFmpegCodec(ffmpegPath, convert.ToExecCmdCtx(exec.CommandContext))
	}
	return &Dependencies{
		NewCodec: newCodec,
		RunGUI: func(ctx context.Context, cfg *config.Config, version string) {
			ui.Run(ctx, cfg, version, func(ffmpegPath string) convert.Converter {
				return convert.NewWorker(newCodec(ffmpegPath))
			})
		},
		LookPath: exec.LookPath,
	}
}

func ExecuteContext(ctx context.Context, version string) error {
	return NewRootCmd(version, DefaultDependencies()).ExecuteContext(ctx)
}

type rootOptions struct {
	configPath string
	verbose    bool

	cfg *config.Config
}

func NewRootCmd(version string, deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Version:           version,
		Use:               "audio-converter",
		Short:             "Batch-convert audio files between mp3, wav, flac, ogg and m4a",
		Long:              "Batch-convert audio files between mp3, wav, flac, ogg and m4a.\nWithout a subcommand the desktop window is opened.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps.RunGUI(cmd.Context(), opts.cfg, version)
			return nil
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "audio-converter version %s" .Version}}
`)

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default $"+config.EnvConfigPath+" or "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConvertCmd(opts, deps))
	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDoctorCmd(opts, deps))
	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
