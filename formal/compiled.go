package formal

import (
	"context"
	"log/slog"
)

// Program is the compiled, render-ready form of a default value.
type Program interface {
	// Run evaluates the program against env, the values already bound for
	// the enclosing template invocation.
	Run(env map[string]any) (any, error)

	// Source returns the default value text the program was compiled from.
	Source() string
}

// Compiler compiles the default value of an argument into a [Program].
//
// CompileDefault is called at most once per argument for each successful
// result; see [Argument.CompiledDefault].
type Compiler interface {
	CompileDefault(ctx context.Context, arg *Argument, source string) (Program, error)
}

// CompilerFunc adapts an ordinary function to the [Compiler] interface.
type CompilerFunc func(ctx context.Context, arg *Argument, source string) (Program, error)

// CompileDefault calls f(ctx, arg, source).
func (f CompilerFunc) CompileDefault(
	ctx context.Context,
	arg *Argument,
	source string,
) (Program, error) {
	return f(ctx, arg, source)
}

// CompiledDefault returns the compiled form of the argument's default value,
// compiling it with c on first use.
//
// The first successful compilation is stored and returned by every later
// call, whichever compiler is passed. Concurrent first calls are serialized
// so that exactly one compilation is stored. A failed compilation is not
// stored; the next call tries again.
//
// It returns [ErrNoDefault] if the argument has no default value, and
// [ErrNoCompiler] if no compiled form is stored and c is nil.
func (a *Argument) CompiledDefault(ctx context.Context, c Compiler) (Program, error) {
	if !a.hasDefault {
		return nil, ErrNoDefault.With(slog.String("argument", a.name))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.compiled != nil {
		return a.compiled, nil
	}

	if c == nil {
		return nil, ErrNoCompiler.With(slog.String("argument", a.name))
	}

	program, err := c.CompileDefault(ctx, a, a.value)
	if err != nil {
		return nil, ErrCompileDefault.Wrap(err).
			With(
				slog.String("argument", a.name),
				slog.String("source", a.value),
			)
	}

	if program == nil {
		return nil, ErrCompileDefault.
			With(
				slog.String("argument", a.name),
				slog.String("source", a.value),
			)
	}

	a.compiled = program

	return program, nil
}

// Compiled returns the stored compiled default without compiling, and
// whether one is stored.
func (a *Argument) Compiled() (Program, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.compiled, a.compiled != nil
}
