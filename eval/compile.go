package eval

import (
	"context"
	"log/slog"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/stsig/formal"
	"github.com/ardnew/stsig/log"
)

// Sentinel errors.
var (
	ErrUnknownArgument = formal.NewError("unknown argument")
	ErrEvaluateDefault = formal.NewError("default value evaluation failed")
)

// Compiler compiles default values as expr-lang expressions.
// It is safe for concurrent use.
type Compiler struct {
	env    map[string]any
	logger log.Logger
	strict bool
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithEnv adds constants and functions visible to every default value.
// Bound arguments shadow entries of the same name.
func WithEnv(env map[string]any) Option {
	return func(c *Compiler) {
		maps.Copy(c.env, env)
	}
}

// WithStrict makes references to names absent from the environment a
// compile error. By default such references compile and evaluate to nil, so
// a default may refer to sibling arguments that are only known at binding
// time.
func WithStrict(strict bool) Option {
	return func(c *Compiler) {
		c.strict = strict
	}
}

// WithSignature declares the arguments of sig in the environment so that a
// strict compiler accepts defaults referring to sibling arguments. An
// argument left unbound evaluates to nil. Entries already present are kept.
func WithSignature(sig *formal.Signature) Option {
	return func(c *Compiler) {
		if sig.IsUnknown() {
			return
		}

		for _, name := range sig.Names() {
			if _, ok := c.env[name]; !ok {
				c.env[name] = nil
			}
		}
	}
}

// WithLogger sets the logger used for compile and evaluation events.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{env: map[string]any{}}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// CompileDefault implements [formal.Compiler].
func (c *Compiler) CompileDefault(
	ctx context.Context,
	arg *formal.Argument,
	source string,
) (formal.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []expr.Option{expr.Env(c.env)}
	if !c.strict {
		opts = append(opts, expr.AllowUndefinedVariables())
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "compiled default",
		slog.String("argument", arg.Name()),
		slog.String("source", source),
	)

	return &Program{
		program: program,
		source:  source,
		env:     c.env,
	}, nil
}

// Program is a compiled default value.
type Program struct {
	program *vm.Program
	env     map[string]any
	source  string
}

// Run evaluates the program with env layered over the compiler's
// environment.
func (p *Program) Run(env map[string]any) (any, error) {
	scope := make(map[string]any, len(p.env)+len(env))
	maps.Copy(scope, p.env)
	maps.Copy(scope, env)

	return expr.Run(p.program, scope)
}

// Source returns the default value text.
func (p *Program) Source() string { return p.source }

// Evaluate compiles and runs source once with env layered over the
// compiler's environment. The result is not retained.
func (c *Compiler) Evaluate(
	ctx context.Context,
	source string,
	env map[string]any,
) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []expr.Option{expr.Env(c.env)}
	if !c.strict {
		opts = append(opts, expr.AllowUndefinedVariables())
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, err
	}

	return (&Program{program: program, env: c.env, source: source}).Run(env)
}
