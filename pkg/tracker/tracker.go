package tracker

import (
	"fmt"

	"xfollow/pkg/chart"
	"xfollow/pkg/config"
	"xfollow/pkg/logger"
	"xfollow/pkg/snapshot"
	"xfollow/pkg/twitter"
)

// Tracker orchestrates one run of the follower pipeline: load history, fetch
// current counts, merge, persist, render.
type Tracker struct {
	client   FollowerClient
	store    SnapshotStore
	renderer ChartRenderer
	accounts *config.AccountIndex
	logger   logger.Logger
}

// Result summarizes a successful run
type Result struct {
	Date      string
	Fetched   int
	Total     int
	ChartPath string
}

// New creates a Tracker wired to the real client, store and renderer.
// The API key must already be resolved into cfg.API.Key.
func New(cfg *config.Config, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.GetLogger()
	}

	client := twitter.NewClient(cfg.API.BaseURL, cfg.API.Host, cfg.API.Key, cfg.API.Timeout, log)
	store := snapshot.NewStore(cfg.Storage.Path, log)

	var renderer ChartRenderer
	if cfg.Chart.Output != "" {
		renderer = chart.NewRenderer(&cfg.Chart, log)
	}

	return &Tracker{
		client:   client,
		store:    store,
		renderer: renderer,
		accounts: cfg.AccountIndex(),
		logger:   log,
	}
}

// NewWithComponents creates a Tracker from explicit components, mainly for tests.
// A nil renderer skips the chart step.
func NewWithComponents(client FollowerClient, store SnapshotStore, renderer ChartRenderer, accounts *config.AccountIndex, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Tracker{
		client:   client,
		store:    store,
		renderer: renderer,
		accounts: accounts,
		logger:   log,
	}
}

// Run executes one tracking cycle for the given calendar date. The fetch
// happens before anything is written, so a failed fetch leaves storage
// untouched and produces no chart.
func (t *Tracker) Run(date string) (*Result, error) {
	if _, err := snapshot.ParseDate(date); err != nil {
		return nil, err
	}
	if t.accounts.Len() == 0 {
		return nil, fmt.Errorf("no accounts configured")
	}

	set, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}

	t.logger.InfoWithFields("fetching follower counts", map[string]interface{}{
		"date":     date,
		"accounts": t.accounts.Len(),
	})

	counts, err := t.client.FetchFollowerCounts(t.accounts.IDs())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follower counts: %w", err)
	}

	// Map external IDs back to configured usernames. An ID the API returned
	// that is not configured is logged and skipped, never fatal.
	byUsername := make(map[string]int, len(counts))
	for id, followers := range counts {
		username, ok := t.accounts.UsernameForID(id)
		if !ok {
			t.logger.WarnWithFields("username not found for ID", map[string]interface{}{
				"rest_id": id,
			})
			continue
		}
		byUsername[username] = followers
	}

	set.Merge(byUsername, date)

	if err := t.store.Save(set); err != nil {
		return nil, fmt.Errorf("failed to save snapshot history: %w", err)
	}

	t.logger.InfoWithFields("follower counts updated", map[string]interface{}{
		"date":    date,
		"fetched": len(byUsername),
		"total":   set.Len(),
	})

	result := &Result{
		Date:    date,
		Fetched: len(byUsername),
		Total:   set.Len(),
	}

	if t.renderer != nil {
		path, err := t.renderer.Render(set)
		if err != nil {
			return result, fmt.Errorf("failed to render chart: %w", err)
		}
		result.ChartPath = path
	}

	return result, nil
}

// RenderOnly renders the chart from the persisted history without fetching.
func (t *Tracker) RenderOnly() (string, error) {
	if t.renderer == nil {
		return "", fmt.Errorf("no chart renderer configured")
	}

	set, err := t.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load snapshot history: %w", err)
	}
	if set.Len() == 0 {
		return "", fmt.Errorf("no snapshot history to chart")
	}

	return t.renderer.Render(set)
}
