package platform

// Package platform contains OS/platform integration: filesystem helpers,
// drop and clipboard path parsing, tag reading and OS folder reveal.
