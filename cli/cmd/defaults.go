package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/stsig/eval"
	"github.com/ardnew/stsig/log"
	"github.com/ardnew/stsig/pkg"
)

// Defaults binds arguments to the first declaration of a template and prints
// the resulting argument values as a JSON object.
//
// Supplied values and defaults are both expr-lang expressions, so
// --set width=80 binds the number 80 and --set 'title="Home"' binds a string.
// A default may refer to arguments declared before it.
type Defaults struct {
	Template string            `help:"Template whose signature is bound."                            required:"" short:"t"`
	Set      map[string]string `help:"Supply an argument as name=expression."                                    short:"s"`
	Strict   bool              `help:"Reject expressions that reference names other than the template arguments."`
	Indent   int               `default:"2"                                         help:"Indent width; 0 is compact." short:"i"`
	Sources  []string          `arg:""                                              help:"Manifest files, or '-' for stdin." optional:""`
}

// Run executes the defaults command.
func (d *Defaults) Run(ctx context.Context) error {
	m, err := load(ctx, d.Sources)
	if err != nil {
		return err
	}

	t, ok := m.Lookup(d.Template)
	if !ok {
		return pkg.ErrTemplateNotFound.Wrapf("%q", d.Template)
	}

	sig := t.Signature()

	c := eval.NewCompiler(
		eval.WithStrict(d.Strict),
		eval.WithSignature(sig),
		eval.WithLogger(log.Default()),
	)

	// Compile every default up front so a broken default is reported even
	// when the caller supplies that argument.
	if err := sig.CompileDefaults(ctx, c); err != nil {
		return err
	}

	supplied := make(map[string]any, len(d.Set))

	for _, name := range slices.Sorted(maps.Keys(d.Set)) {
		v, err := c.Evaluate(ctx, d.Set[name], nil)
		if err != nil {
			return pkg.ErrInvalidValue.Wrap(err).Wrapf("%s=%s", name, d.Set[name])
		}

		supplied[name] = v
	}

	bound, err := c.Bind(ctx, sig, supplied)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "bound template",
		slog.String("template", t.String()),
		slog.Int("supplied", len(supplied)),
		slog.Int("bound", len(bound)),
	)

	enc := json.NewEncoder(streamsFrom(ctx).Out)
	if d.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", d.Indent))
	}

	if err := enc.Encode(bound); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
