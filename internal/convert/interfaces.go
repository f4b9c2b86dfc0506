package convert

import (
	"context"

	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/session"
)

// Codec decodes inputPath and encodes it into the given container at
// outputPath. It must leave either a complete file or nothing.
type Codec interface {
	Transcode(ctx context.Context, inputPath, outputPath, container string) error
}

// Converter defines the interface for the conversion worker.
type Converter interface {
	Start(ctx context.Context, snap session.Snapshot) (*Batch, error)
	State() model.BatchState
}
