package snapshot

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the calendar-date format used in storage, ISO YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Key uniquely identifies a record: one observation per account per day.
type Key struct {
	Date     string
	Username string
}

// Record is a single follower-count observation.
type Record struct {
	Date      string
	Username  string
	Followers int
}

// Key returns the record's unique (date, username) key.
func (r Record) Key() Key {
	return Key{Date: r.Date, Username: r.Username}
}

// Validate checks the record against the storage schema.
func (r Record) Validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if r.Username == "" {
		return fmt.Errorf("record has an empty username")
	}
	if r.Followers < 0 {
		return fmt.Errorf("record for %s on %s has a negative follower count %d", r.Username, r.Date, r.Followers)
	}
	return nil
}

// ParseDate parses an ISO calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Today returns the current calendar date in storage format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Set is a deduplicated collection of records indexed by (date, username).
// The zero value is not usable; call NewSet.
type Set struct {
	records map[Key]Record
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{records: make(map[Key]Record)}
}

// Add inserts a record, overwriting any existing record with the same key.
func (s *Set) Add(r Record) {
	s.records[r.Key()] = r
}

// Get returns the record at (date, username), if present.
func (s *Set) Get(date, username string) (Record, bool) {
	r, ok := s.records[Key{Date: date, Username: username}]
	return r, ok
}

// Len returns the number of records in the set.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns all records sorted by (username, date) ascending, the order
// used at persistence time.
func (s *Set) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// Equal reports whether two sets hold the same records, ignoring order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for key, r := range s.records {
		o, ok := other.records[key]
		if !ok || o != r {
			return false
		}
	}
	return true
}
