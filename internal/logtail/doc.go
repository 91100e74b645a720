// Package logtail reads the tail of qbtui's diagnostic log.
//
// The log is written by zerolog as one JSON object per line. Read keeps the
// last N lines in a ring buffer, so memory stays O(N) however large the file
// grows, and decodes each line into an Entry (time, level, message, error and
// the remaining fields sorted by key). Lines that are not JSON come back as
// Raw entries.
//
// The UI uses it for the log overlay:
//
//	entries, err := logtail.Read(logPath, 200)
package logtail
