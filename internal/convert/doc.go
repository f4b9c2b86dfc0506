package convert

// Package convert runs conversion batches. A Worker walks an immutable session
// snapshot strictly in order, derives each output path and hands the file to
// a Codec; per-file failures become outcomes and never abort the batch. The
// ffmpeg codec builds its command line with github.com/u2takey/ffmpeg-go and
// writes output all-or-nothing.
