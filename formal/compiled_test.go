package formal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// constProgram evaluates to its own source text.
type constProgram string

func (p constProgram) Run(map[string]any) (any, error) { return string(p), nil }

func (p constProgram) Source() string { return string(p) }

type constCompiler struct{}

func (constCompiler) CompileDefault(_ context.Context, _ *Argument, source string) (Program, error) {
	return constProgram(source), nil
}

// countingCompiler counts invocations and optionally fails.
type countingCompiler struct {
	calls atomic.Int32
	fail  error
}

func (c *countingCompiler) CompileDefault(_ context.Context, _ *Argument, source string) (Program, error) {
	c.calls.Add(1)

	if c.fail != nil {
		return nil, c.fail
	}

	return constProgram(source), nil
}

func TestArgument_CompiledDefault_NoDefault(t *testing.T) {
	_, err := New("x").CompiledDefault(t.Context(), constCompiler{})
	if !errors.Is(err, ErrNoDefault) {
		t.Errorf("expected ErrNoDefault, got %v", err)
	}
}

func TestArgument_CompiledDefault_NilCompiler(t *testing.T) {
	_, err := NewWithDefault("x", "1").CompiledDefault(t.Context(), nil)
	if !errors.Is(err, ErrNoCompiler) {
		t.Errorf("expected ErrNoCompiler, got %v", err)
	}
}

func TestArgument_CompiledDefault_Memoized(t *testing.T) {
	a := NewWithDefault("x", "hello")

	if _, ok := a.Compiled(); ok {
		t.Fatal("expected nothing compiled before first use")
	}

	first := &countingCompiler{}

	p1, err := a.CompiledDefault(t.Context(), first)
	if err != nil {
		t.Fatalf("CompiledDefault: %v", err)
	}

	if p1.Source() != "hello" {
		t.Errorf("Source() = %q, want hello", p1.Source())
	}

	second := &countingCompiler{}

	p2, err := a.CompiledDefault(t.Context(), second)
	if err != nil {
		t.Fatalf("CompiledDefault: %v", err)
	}

	if p1 != p2 {
		t.Error("expected the stored program on the second call")
	}

	if first.calls.Load() != 1 || second.calls.Load() != 0 {
		t.Errorf("compiler calls = %d, %d; want 1, 0", first.calls.Load(), second.calls.Load())
	}

	if p, ok := a.Compiled(); !ok || p != p1 {
		t.Error("Compiled() does not report the stored program")
	}

	// A stored program is returned even without a compiler.
	if p, err := a.CompiledDefault(t.Context(), nil); err != nil || p != p1 {
		t.Errorf("CompiledDefault(nil) = %v, %v", p, err)
	}
}

func TestArgument_CompiledDefault_FailureNotMemoized(t *testing.T) {
	a := NewWithDefault("x", "bad")
	cause := errors.New("syntax error")

	_, err := a.CompiledDefault(t.Context(), &countingCompiler{fail: cause})
	if !errors.Is(err, ErrCompileDefault) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrCompileDefault wrapping cause, got %v", err)
	}

	if _, ok := a.Compiled(); ok {
		t.Fatal("failed compilation must not be stored")
	}

	p, err := a.CompiledDefault(t.Context(), constCompiler{})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	if p.Source() != "bad" {
		t.Errorf("Source() = %q", p.Source())
	}
}

func TestArgument_CompiledDefault_NilProgram(t *testing.T) {
	nilCompiler := CompilerFunc(func(context.Context, *Argument, string) (Program, error) {
		return nil, nil
	})

	_, err := NewWithDefault("x", "1").CompiledDefault(t.Context(), nilCompiler)
	if !errors.Is(err, ErrCompileDefault) {
		t.Errorf("expected ErrCompileDefault, got %v", err)
	}
}

func TestArgument_CompiledDefault_ConcurrentFirstUse(t *testing.T) {
	a := NewWithDefault("x", "shared")
	c := &countingCompiler{}

	const workers = 32

	var (
		wg       sync.WaitGroup
		programs [workers]Program
	)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			p, err := a.CompiledDefault(context.Background(), c)
			if err != nil {
				t.Errorf("worker %d: %v", i, err)

				return
			}

			programs[i] = p
		}()
	}

	wg.Wait()

	if n := c.calls.Load(); n != 1 {
		t.Errorf("compiler called %d times, want 1", n)
	}

	for i, p := range programs {
		if p != programs[0] {
			t.Errorf("worker %d received a different program", i)
		}
	}
}
