// Package logger provides structured logging for the importer based on Zap.
//
// A single configured *zap.Logger is created at startup and handed to every
// component. Import runs and HTTP handlers log through the same instance, so
// a whole sync run can be followed in one stream.
//
// # Request Correlation
//
// For the HTTP surface, the WithRayID helper pulls the per-request ray ID out
// of the Fiber context and attaches it to the log entry, so all lines written
// while serving one request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (colored, for terminals) or json (for log shippers)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Sync started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Sync failed", zap.Error(err))
package logger
