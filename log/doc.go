// Package log wraps [log/slog] with the small, option-driven logger used
// throughout stsig.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("signature loaded", slog.String("template", "page"))
//
// # Configuration
//
// Loggers are configured once, at creation, using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing configuration and
// [Logger.With] attaches attributes to every subsequent record.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) log through a
// default logger writing to [os.Stderr]. The CLI reconfigures it with
// [Config] as flags are parsed.
//
// The zero [Logger] discards everything, so components may hold one without
// checking whether a caller supplied it.
package log
