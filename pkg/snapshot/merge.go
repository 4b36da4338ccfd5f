package snapshot

// Merge combines newly fetched follower counts, stamped with the given
// calendar date, into the set. Each (username, count) pair unconditionally
// overwrites any existing record at (date, username), so re-running a fetch
// on the same day replaces that day's values instead of duplicating them.
// Records for other dates are left untouched. Merging the same counts for
// the same date any number of times yields the same set.
func (s *Set) Merge(counts map[string]int, date string) {
	for username, followers := range counts {
		s.Add(Record{
			Date:      date,
			Username:  username,
			Followers: followers,
		})
	}
}

// Merged returns a new set with the counts merged in, leaving the receiver
// unchanged.
func (s *Set) Merged(counts map[string]int, date string) *Set {
	out := NewSet()
	for key, r := range s.records {
		out.records[key] = r
	}
	out.Merge(counts, date)
	return out
}
