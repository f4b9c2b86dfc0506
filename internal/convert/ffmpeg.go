package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpeg constants
const (
	FFmpegCommand  = "ffmpeg"
	FFmpegLogLevel = "error"

	// Output is written next to its final name and renamed on success
	PartialSuffix = ".part"
)

// FFmpegCodec converts files by running the ffmpeg binary
type FFmpegCodec struct {
	path       string
	execCmdCtx ExecCmdCtx
}

// NewFFmpegCodec creates a codec running the binary at path ("ffmpeg" from
// PATH when empty) through execCmdCtx
func NewFFmpegCodec(path string, execCmdCtx ExecCmdCtx) *FFmpegCodec {
	if strings.TrimSpace(path) == "" {
		path = FFmpegCommand
	}
	return &FFmpegCodec{
		path:       path,
		execCmdCtx: execCmdCtx,
	}
}

// Path returns the ffmpeg binary the codec runs
func (c *FFmpegCodec) Path() string {
	return c.path
}

// BuildArgs builds the ffmpeg arguments: decode every audio stream of
// inputPath and encode into container at outputPath, overwriting it
func (c *FFmpegCodec) BuildArgs(inputPath, outputPath, container string) []string {
	return ffmpeg.Input(inputPath).
		Audio().
		Output(outputPath, ffmpeg.KwArgs{"f": container}).
		GlobalArgs("-hide_banner", "-loglevel", FFmpegLogLevel).
		OverWriteOutput().
		GetArgs()
}

// Transcode implements Codec
func (c *FFmpegCodec) Transcode(ctx context.Context, inputPath, outputPath, container string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	partialPath := outputPath + PartialSuffix
	args := c.BuildArgs(inputPath, partialPath, container)

	slog.Debug("execute", "cmd", c.path+" "+strings.Join(args, " "))
	out, err := c.execCmdCtx(ctx, c.path, args...).CombinedOutput()
	if err != nil {
		// Remove partial output file
		_ = os.Remove(partialPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return cmdError(err, out)
	}

	if err := os.Rename(partialPath, outputPath); err != nil {
		_ = os.Remove(partialPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// cmdError keeps the last line ffmpeg printed, which names the cause
func cmdError(err error, out []byte) error {
	msg := lastLine(string(out))
	if msg == "" {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return fmt.Errorf("ffmpeg: %s: %w", msg, err)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
