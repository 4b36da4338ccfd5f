package snapshot

import "testing"

func TestMergeIntoEmptySet(t *testing.T) {
	set := NewSet()
	set.Merge(map[string]int{"alice": 100, "bob": 50}, "2024-01-01")

	if set.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", set.Len())
	}

	alice, ok := set.Get("2024-01-01", "alice")
	if !ok {
		t.Fatal("Expected a record for alice on 2024-01-01")
	}
	if alice.Followers != 100 {
		t.Errorf("Expected alice to have 100 followers, got %d", alice.Followers)
	}

	bob, ok := set.Get("2024-01-01", "bob")
	if !ok {
		t.Fatal("Expected a record for bob on 2024-01-01")
	}
	if bob.Followers != 50 {
		t.Errorf("Expected bob to have 50 followers, got %d", bob.Followers)
	}
}

func TestMergeNewDayKeepsHistory(t *testing.T) {
	set := NewSet()
	set.Add(Record{Date: "2024-01-01", Username: "alice", Followers: 100})

	set.Merge(map[string]int{"alice": 110}, "2024-01-02")

	if set.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", set.Len())
	}

	old, ok := set.Get("2024-01-01", "alice")
	if !ok || old.Followers != 100 {
		t.Errorf("Expected prior record (2024-01-01, alice, 100) to be untouched, got %+v ok=%v", old, ok)
	}

	updated, ok := set.Get("2024-01-02", "alice")
	if !ok || updated.Followers != 110 {
		t.Errorf("Expected new record (2024-01-02, alice, 110), got %+v ok=%v", updated, ok)
	}
}

func TestMergeSameDayOverwrites(t *testing.T) {
	set := NewSet()
	set.Add(Record{Date: "2024-01-01", Username: "alice", Followers: 100})

	// Re-run on the same day must overwrite, not duplicate
	set.Merge(map[string]int{"alice": 105}, "2024-01-01")

	if set.Len() != 1 {
		t.Fatalf("Expected exactly 1 record after same-day merge, got %d", set.Len())
	}

	r, _ := set.Get("2024-01-01", "alice")
	if r.Followers != 105 {
		t.Errorf("Expected overwritten value 105, got %d", r.Followers)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	base := NewSet()
	base.Add(Record{Date: "2024-01-01", Username: "alice", Followers: 100})
	base.Add(Record{Date: "2024-01-01", Username: "bob", Followers: 50})

	counts := map[string]int{"alice": 110, "carol": 7}

	once := base.Merged(counts, "2024-01-02")
	twice := once.Merged(counts, "2024-01-02")

	if !once.Equal(twice) {
		t.Error("Expected merge to be idempotent for the same counts and date")
	}

	records := once.Records()
	twiceRecords := twice.Records()
	if len(records) != len(twiceRecords) {
		t.Fatalf("Expected identical record counts, got %d and %d", len(records), len(twiceRecords))
	}
	for i := range records {
		if records[i] != twiceRecords[i] {
			t.Errorf("Record %d differs: %+v vs %+v", i, records[i], twiceRecords[i])
		}
	}
}

func TestMergeLeavesOtherKeysUnchanged(t *testing.T) {
	set := NewSet()
	set.Add(Record{Date: "2024-01-01", Username: "alice", Followers: 100})
	set.Add(Record{Date: "2024-01-01", Username: "bob", Followers: 50})
	set.Add(Record{Date: "2024-01-02", Username: "bob", Followers: 55})

	set.Merge(map[string]int{"alice": 120}, "2024-01-02")

	for _, want := range []Record{
		{Date: "2024-01-01", Username: "alice", Followers: 100},
		{Date: "2024-01-01", Username: "bob", Followers: 50},
		{Date: "2024-01-02", Username: "bob", Followers: 55},
		{Date: "2024-01-02", Username: "alice", Followers: 120},
	} {
		got, ok := set.Get(want.Date, want.Username)
		if !ok || got != want {
			t.Errorf("Expected %+v, got %+v ok=%v", want, got, ok)
		}
	}
}

func TestMergeNeverDuplicatesKeys(t *testing.T) {
	set := NewSet()
	set.Merge(map[string]int{"alice": 1}, "2024-01-01")
	set.Merge(map[string]int{"alice": 2}, "2024-01-01")
	set.Merge(map[string]int{"alice": 3, "bob": 4}, "2024-01-01")

	seen := make(map[Key]bool)
	for _, r := range set.Records() {
		if seen[r.Key()] {
			t.Errorf("Duplicate key %+v in record set", r.Key())
		}
		seen[r.Key()] = true
	}
}

func TestRecordsSortedByUsernameThenDate(t *testing.T) {
	set := NewSet()
	set.Add(Record{Date: "2024-01-02", Username: "bob", Followers: 2})
	set.Add(Record{Date: "2024-01-01", Username: "bob", Followers: 1})
	set.Add(Record{Date: "2024-01-03", Username: "alice", Followers: 3})
	set.Add(Record{Date: "2024-01-01", Username: "alice", Followers: 1})

	records := set.Records()
	want := []Key{
		{Date: "2024-01-01", Username: "alice"},
		{Date: "2024-01-03", Username: "alice"},
		{Date: "2024-01-01", Username: "bob"},
		{Date: "2024-01-02", Username: "bob"},
	}
	for i, key := range want {
		if records[i].Key() != key {
			t.Errorf("Position %d: expected %+v, got %+v", i, key, records[i].Key())
		}
	}
}
