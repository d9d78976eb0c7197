// Package logging configures slog for docrank.
//
// Diagnostics go to stderr as text at the configured level, leaving stdout
// to the report. With --debug, a JSON copy of every record at debug level is
// also written to ~/.docrank/logs/docrank.log, rotated by size.
package logging
