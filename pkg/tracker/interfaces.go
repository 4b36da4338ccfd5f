package tracker

import "xfollow/pkg/snapshot"

// FollowerClient defines the remote lookup operation the tracker needs
type FollowerClient interface {
	FetchFollowerCounts(ids []string) (map[string]int, error)
}

// SnapshotStore defines the persistence operations the tracker needs
type SnapshotStore interface {
	Load() (*snapshot.Set, error)
	Save(set *snapshot.Set) error
}

// ChartRenderer renders the history and returns the output path
type ChartRenderer interface {
	Render(set *snapshot.Set) (string, error)
}
