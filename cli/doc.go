// Package cli contains the command line interface for stsig.
//
// # Usage
//
//	stsig [flags] <command> [sources ...]
//
// Commands are implemented in package [github.com/ardnew/stsig/cli/cmd]:
//
//	stsig fmt --format=yaml site.yaml
//	stsig check site.yaml extra.yaml
//	stsig defaults --template page --set 'title="Home"' site.yaml
//	stsig version
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory ($XDG_CONFIG_HOME/stsig on Linux). YAML mappings
// are flattened with hyphens, so
//
//	log:
//	  level: debug
//
// is the same as --log-level=debug. Command-line flags override both files.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o stsig .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/stsig/pprof)
package cli
