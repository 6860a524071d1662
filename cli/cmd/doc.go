// Package cmd implements the stsig subcommands.
//
// Every command reads one or more manifest sources. A source is a YAML or
// JSON manifest file, a CBOR manifest with the ".cbor" extension, or "-" for
// YAML on stdin. Multiple sources are concatenated in order.
//
//   - [Fmt] re-encodes the templates as native signatures, YAML, JSON, or CBOR.
//   - [Check] reports templates redeclared with a different signature.
//   - [Defaults] binds supplied arguments to a template and evaluates the
//     defaults of those omitted.
//   - [Version] prints the version.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"
)
