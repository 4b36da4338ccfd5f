// Package logger provides a structured logging interface for the follower tracker.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output
// - Optional file output
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "xfollow/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Run started")
//	logger.WithField("username", "nvidia").Info("Merged follower count")
//	logger.WithError(err).Error("Failed to fetch follower counts")
package logger
