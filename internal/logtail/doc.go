// Package logtail reads the end of the cardview log file and turns its JSON
// lines into one-line text for the "cardview logs" command.
//
// Read keeps a ring of maxLines entries while scanning, so memory stays
// bounded by the requested line count rather than the file size. Format
// prints ts, level and msg first, then the remaining fields sorted by key.
package logtail
