// Package snapshot holds the follower-count history: records keyed by
// (date, username), the merge that folds a day's fetch into the history, and
// the CSV store that persists it.
//
// The store writes the full record set on every save, sorted by
// (username, date) for readability, using a temp-file-and-rename so a partial
// file is never observable. A missing file loads as an empty history; a file
// that cannot be parsed loads as ErrCorruptStorage.
package snapshot
