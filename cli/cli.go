package cli

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stsig/cli/cmd"
	"github.com/ardnew/stsig/pkg"
)

// Base names of the configuration files read from [pkg.ConfigDir].
const (
	configYAML = "config.yaml"
	configJSON = "config.json"
)

// CLI is the top-level command-line interface for stsig.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Fmt      cmd.Fmt      `cmd:"" help:"Format template signatures"`
	Check    cmd.Check    `cmd:"" help:"Report templates redeclared with a different signature"`
	Defaults cmd.Defaults `cmd:"" help:"Bind arguments to a template and print the result"`
	Version  cmd.Version  `cmd:"" help:"Print version"`
}

// Run executes the stsig CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return RunWith(ctx, nil, nil, exit, args...)
}

// RunWith is like [Run] but reads stdin from in and writes command output and
// usage to out. A nil stream selects the process default.
func RunWith(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		cmd.ConfigIdentifier: pkg.ConfigPath(configYAML),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"fmtFormatEnum":      strings.Join(cmd.Formats, ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			slices.Concat([]kong.Group{cli.Log.group()}, cli.Pprof.groups()),
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(configJSON)),
		kong.Configuration(resolve(ctx), pkg.ConfigPath(configYAML)),
		vars,
	}

	if out != nil {
		opts = append(opts, kong.Writers(out, out))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithStreams(ctx, in, out)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
