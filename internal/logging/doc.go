// Package logging provides structured logging for the textwatch binaries.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used by the face and the companion service.
//
// # Log Levels
//
//   - Debug: hex dumps of dictionaries, animation scheduling, throttle decisions
//   - Info: link events, settings changes, received readings
//   - Warn: dropped messages, failed sends, animation fallbacks
//   - Error: startup failures
//
// # Configuration
//
// The level comes from the caller or from TEXTWATCH_LOG_LEVEL. When neither
// is set the logger is a no-op, which keeps the terminal face clean:
//
//	if err := logging.Initialize("debug", "/tmp/textwatch.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The face always logs to a file because stdout belongs to the renderer.
// The companion logs to stdout.
package logging
