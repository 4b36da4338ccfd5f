package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"xfollow/pkg/errors"
	"xfollow/pkg/logger"
)

// csvHeader is the fixed header row of the snapshot file.
var csvHeader = []string{"date", "username", "followers_count"}

// Store persists a Set as a CSV file.
type Store struct {
	path   string
	logger logger.Logger
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Store{path: path, logger: log}
}

// Path returns the storage file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the snapshot file. A missing file yields an empty set. A file
// whose structure or header cannot be parsed yields ErrCorruptStorage, so
// history is never silently discarded. Individual malformed data rows are
// logged and skipped.
func (st *Store) Load() (*Set, error) {
	file, err := os.Open(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			st.logger.DebugWithFields("no snapshot file, starting empty", map[string]interface{}{
				"path": st.path,
			})
			return NewSet(), nil
		}
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Field-count checks happen per row in parseRow so one short row is a
	// warning, not corruption.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCorruptStorage, err)
	}

	// A file with no rows at all is treated as an empty history.
	if len(rows) == 0 {
		return NewSet(), nil
	}

	if !isHeader(rows[0]) {
		return nil, fmt.Errorf("%w: unexpected header %v", errors.ErrCorruptStorage, rows[0])
	}

	set := NewSet()
	for _, row := range rows[1:] {
		record, err := parseRow(row)
		if err != nil {
			st.logger.WarnWithFields("skipping malformed row", map[string]interface{}{
				"row":   row,
				"error": err.Error(),
			})
			continue
		}
		set.Add(record)
	}

	return set, nil
}

// Save writes all records, sorted by (username, date), to the snapshot file.
// The data goes to a temporary file in the same directory which is then
// renamed over the target, so readers see either the old or the new complete
// content, never a truncated file.
func (st *Store) Save(set *Set) error {
	dir := filepath.Dir(st.path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	tempFile := st.path + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	writer := csv.NewWriter(out)
	writeErr := writer.Write(csvHeader)
	if writeErr == nil {
		for _, r := range set.Records() {
			if writeErr = writer.Write([]string{r.Date, r.Username, strconv.Itoa(r.Followers)}); writeErr != nil {
				break
			}
		}
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	closeErr := out.Close()

	if writeErr != nil {
		os.Remove(tempFile) // Clean up temp file
		return fmt.Errorf("failed to write snapshot data: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tempFile) // Clean up temp file
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	// Atomic rename
	if err := os.Rename(tempFile, st.path); err != nil {
		os.Remove(tempFile) // Clean up temp file
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	st.logger.DebugWithFields("snapshot saved", map[string]interface{}{
		"path":    st.path,
		"records": set.Len(),
	})

	return nil
}

func isHeader(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i, field := range csvHeader {
		if row[i] != field {
			return false
		}
	}
	return true
}

func parseRow(row []string) (Record, error) {
	if len(row) != 3 {
		return Record{}, fmt.Errorf("expected 3 fields, got %d", len(row))
	}

	followers, err := strconv.Atoi(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("invalid follower count %q: %w", row[2], err)
	}

	record := Record{
		Date:      row[0],
		Username:  row[1],
		Followers: followers,
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}

	return record, nil
}
