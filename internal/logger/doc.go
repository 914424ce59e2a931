// Package logger provides structured logging and in-process metrics for bref-rosters.
//
// Logging is backed by zerolog. Entries are JSON by default, or human-readable
// when a console logger is configured. The Fields map keeps call sites short:
//
//	logger.Info("Fetched page", logger.Fields{
//	    "url":   url,
//	    "bytes": len(body),
//	})
//
//	logger.Error("Report failed", logger.Fields{"team": "WSN"}, err)
//
// Metrics track counters and timings, e.g. fetch.requests, cache.hits or
// report.depth_chart durations. They can be printed with --verbose.
package logger
