package eval

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/stsig/formal"
)

// Bind returns the arguments of one invocation of a template with signature
// sig, given the values supplied by the caller.
//
// Supplied values are kept as is. Each omitted argument that declares a
// default receives the value of its compiled default, evaluated with every
// argument bound so far visible by name; arguments are visited in
// declaration order, so a default may use the defaults of earlier arguments.
// Omitted arguments without a default are left unbound.
//
// Supplying a name sig does not declare is an [ErrUnknownArgument] error,
// unless sig is [formal.Unknown], in which case supplied is returned as a
// copy without further checks.
func Bind(
	ctx context.Context,
	c formal.Compiler,
	sig *formal.Signature,
	supplied map[string]any,
) (map[string]any, error) {
	bound := maps.Clone(supplied)
	if bound == nil {
		bound = map[string]any{}
	}

	if sig.IsUnknown() {
		return bound, nil
	}

	for _, name := range slices.Sorted(maps.Keys(supplied)) {
		if sig.Index(name) < 0 {
			return nil, ErrUnknownArgument.
				With(
					slog.String("argument", name),
					slog.String("signature", sig.String()),
				)
		}
	}

	for _, arg := range sig.All() {
		if _, ok := bound[arg.Name()]; ok || !arg.HasDefault() {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		program, err := arg.CompiledDefault(ctx, c)
		if err != nil {
			return nil, err
		}

		value, err := program.Run(bound)
		if err != nil {
			return nil, ErrEvaluateDefault.Wrap(err).
				With(
					slog.String("argument", arg.Name()),
					slog.String("source", program.Source()),
				)
		}

		bound[arg.Name()] = value
	}

	return bound, nil
}

// Bind binds supplied to sig using c to compile defaults. See [Bind].
func (c *Compiler) Bind(
	ctx context.Context,
	sig *formal.Signature,
	supplied map[string]any,
) (map[string]any, error) {
	bound, err := Bind(ctx, c, sig, supplied)
	if err != nil {
		c.logger.DebugContext(ctx, "bind failed",
			slog.String("signature", sig.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	return bound, nil
}
