package session

// Package session holds the in-memory state of one conversion session: the
// ordered set of accepted input files, the chosen output format and the
// output directory. File intake validates and deduplicates candidate paths
// before they enter the session. A Snapshot is the immutable view a batch
// reads, so the UI may keep working while a conversion runs.
