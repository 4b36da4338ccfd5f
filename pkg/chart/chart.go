package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/browser"

	"xfollow/pkg/config"
	"xfollow/pkg/logger"
	"xfollow/pkg/snapshot"
)

// Renderer draws the follower history as an HTML line chart, one series per
// username with calendar dates on the x-axis.
type Renderer struct {
	output string
	title  string
	open   bool
	logger logger.Logger
}

// NewRenderer creates a renderer from chart configuration.
func NewRenderer(cfg *config.ChartConfig, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Renderer{
		output: cfg.Output,
		title:  cfg.Title,
		open:   cfg.Open,
		logger: log,
	}
}

// Render writes the chart for the given set and returns the output path.
// When configured, the chart is opened in the default browser afterwards.
// Records with unparseable dates are logged and skipped.
func (r *Renderer) Render(set *snapshot.Set) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: r.title,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: r.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Followers"}),
	)

	dates, series := groupRecords(set, r.logger)
	line.SetXAxis(dates)

	usernames := make([]string, 0, len(series))
	for username := range series {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	for _, username := range usernames {
		counts := series[username]
		data := make([]opts.LineData, len(dates))
		for i, date := range dates {
			if count, ok := counts[date]; ok {
				data[i] = opts.LineData{Value: count}
			} else {
				// Gap in the series for dates this account has no record on
				data[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(username, data, charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}))
	}

	if dir := filepath.Dir(r.output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create chart directory: %w", err)
		}
	}

	file, err := os.Create(r.output)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	renderErr := line.Render(file)
	closeErr := file.Close()
	if renderErr != nil {
		return "", fmt.Errorf("failed to render chart: %w", renderErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close chart file: %w", closeErr)
	}

	r.logger.InfoWithFields("chart rendered", map[string]interface{}{
		"path":   r.output,
		"series": len(series),
	})

	if r.open {
		if err := browser.OpenFile(r.output); err != nil {
			// Not fatal: the chart file is already on disk
			r.logger.WarnWithFields("failed to open chart in browser", map[string]interface{}{
				"path":  r.output,
				"error": err.Error(),
			})
		}
	}

	return r.output, nil
}

// groupRecords splits the set into per-username date->count series and the
// sorted union of all dates for the x-axis.
func groupRecords(set *snapshot.Set, log logger.Logger) ([]string, map[string]map[string]int) {
	dateSet := make(map[string]bool)
	series := make(map[string]map[string]int)

	for _, record := range set.Records() {
		if _, err := snapshot.ParseDate(record.Date); err != nil {
			log.WarnWithFields("skipping record with invalid date", map[string]interface{}{
				"date":     record.Date,
				"username": record.Username,
			})
			continue
		}
		dateSet[record.Date] = true
		if series[record.Username] == nil {
			series[record.Username] = make(map[string]int)
		}
		series[record.Username][record.Date] = record.Followers
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings
	sort.Strings(dates)

	return dates, series
}
