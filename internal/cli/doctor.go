package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/audio-converter/internal/config"
	"github.com/ytget/audio-converter/internal/output"
)

// ErrPrerequisitesMissing is returned by doctor when a check failed
var ErrPrerequisitesMissing = errors.New("prerequisites missing")

func newDoctorCmd(root *rootOptions, deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:               "doctor",
		Short:             "Check prerequisites",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			cfg := root.cfg
			ok := true

			if path, err := deps.LookPath(cfg.FFmpegPath); err != nil {
				f.Check("ffmpeg", false, fmt.Sprintf("%q not found. Install ffmpeg or set %s", cfg.FFmpegPath, config.EnvFFmpegPath))
				ok = false
			} else {
				f.Check("ffmpeg", true, path)
			}

			f.Check("Default format", true, cfg.DefaultFormat.String())
			f.Check("Theme", true, cfg.Theme)
			f.Check("Language", true, cfg.Language)
			f.Check("Config file", true, configLocation(root.configPath))

			if !ok {
				f.Warning("\nSome prerequisites are missing.")
				return ErrPrerequisitesMissing
			}
			f.Success("\nAll prerequisites met.")
			return nil
		},
	}
}

func configLocation(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}
	return config.DefaultPath()
}
