// Package tracker orchestrates the daily follower pipeline.
//
// A run is a strict sequence: load the snapshot history, issue one batched
// fetch for all configured accounts, merge the counts under today's date,
// rewrite storage, render the chart. The fetch comes before any write, so a
// failed fetch leaves the history file exactly as it was.
package tracker
