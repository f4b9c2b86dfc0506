package model

// Package model defines domain data structures used across the app: output
// formats, accepted input files, per-file conversion outcomes and batch
// summaries. Structures are plain values so they can cross goroutines and be
// rendered directly by the UI and the CLI report.
