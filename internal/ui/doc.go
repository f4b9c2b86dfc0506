package ui

// Package ui contains the Fyne desktop interface. It feeds files from the
// pickers, drag-and-drop and the clipboard into the session, starts
// conversion batches on the worker and renders per-file outcomes. All UI
// strings are localized via Localization.
