package formal

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestNewSignature_PreservesOrder(t *testing.T) {
	sig, err := NewSignature(New("title"), NewWithDefault("width", "80"), New("body"))
	if err != nil {
		t.Fatalf("NewSignature: %v", err)
	}

	if got := sig.Names(); !slices.Equal(got, []string{"title", "width", "body"}) {
		t.Errorf("Names() = %v", got)
	}

	if sig.Len() != 3 || sig.At(1).Name() != "width" {
		t.Errorf("unexpected layout: %v", sig)
	}

	if i := sig.Index("body"); i != 2 {
		t.Errorf("Index(body) = %d", i)
	}

	if i := sig.Index("missing"); i != -1 {
		t.Errorf("Index(missing) = %d", i)
	}

	arg, ok := sig.Lookup("width")
	if !ok || !arg.HasDefault() {
		t.Errorf("Lookup(width) = %v, %v", arg, ok)
	}
}

func TestNewSignature_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []*Argument
		want error
	}{
		{"empty name", []*Argument{New("a"), New("")}, ErrInvalidName},
		{"nil argument", []*Argument{nil}, ErrInvalidName},
		{"duplicate", []*Argument{New("a"), New("b"), NewWithDefault("a", "1")}, ErrDuplicateArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignature(tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMustSignature_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	MustSignature(New("a"), New("a"))
}

func TestSignature_Unknown(t *testing.T) {
	empty := MustSignature()

	if !Unknown.IsUnknown() || empty.IsUnknown() {
		t.Fatal("IsUnknown misreports")
	}

	if Unknown.Equal(empty) || empty.Equal(Unknown) {
		t.Error("unknown must differ from the empty signature")
	}

	if !Unknown.Equal(Unknown) {
		t.Error("unknown must equal itself")
	}

	var nilSig *Signature
	if !nilSig.Equal(Unknown) {
		t.Error("nil signature is treated as unknown")
	}

	if Unknown.String() != "(...)" || empty.String() != "()" {
		t.Errorf("String() = %q, %q", Unknown.String(), empty.String())
	}

	if Unknown.Hash() == empty.Hash() {
		t.Error("unknown and empty signatures should hash differently")
	}
}

func TestSignature_Equal(t *testing.T) {
	base := MustSignature(New("a"), NewWithDefault("b", "1"))

	tests := []struct {
		name  string
		other *Signature
		want  bool
	}{
		{"identical", MustSignature(New("a"), NewWithDefault("b", "1")), true},
		{"different default content", MustSignature(New("a"), NewWithDefault("b", "2")), true},
		{"missing default", MustSignature(New("a"), New("b")), false},
		{"reordered", MustSignature(NewWithDefault("b", "1"), New("a")), false},
		{"shorter", MustSignature(New("a")), false},
		{"longer", MustSignature(New("a"), NewWithDefault("b", "1"), New("c")), false},
		{"renamed", MustSignature(New("a"), NewWithDefault("c", "1")), false},
		{"unknown", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}

			if tt.want && base.Hash() != tt.other.Hash() {
				t.Error("equal signatures hash differently")
			}
		})
	}
}

func TestSignature_String(t *testing.T) {
	sig := MustSignature(
		New("title", WithCardinality(ExactlyOne)),
		NewWithDefault("width", "80", WithCardinality(Optional)),
		New("items", WithCardinality(ZeroOrMore)),
	)

	if got, want := sig.String(), "(title, width=80, items)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got, want := sig.Annotated(), "(title, width?=80, items*)"; got != want {
		t.Errorf("Annotated() = %q, want %q", got, want)
	}
}

func TestSignature_Defaults(t *testing.T) {
	sig := MustSignature(New("a"), NewWithDefault("b", "1"), New("c"), NewWithDefault("d", ""))

	var names []string
	for arg := range sig.Defaults() {
		names = append(names, arg.Name())
	}

	if !slices.Equal(names, []string{"b", "d"}) {
		t.Errorf("Defaults() = %v", names)
	}

	for range Unknown.Defaults() {
		t.Error("unknown signature has no defaults")
	}
}

func TestSignature_CompileDefaults(t *testing.T) {
	sig := MustSignature(New("a"), NewWithDefault("b", "1"), NewWithDefault("c", "2"))
	c := &countingCompiler{}

	if err := sig.CompileDefaults(t.Context(), c); err != nil {
		t.Fatalf("CompileDefaults: %v", err)
	}

	if c.calls.Load() != 2 {
		t.Errorf("compiler calls = %d, want 2", c.calls.Load())
	}

	for arg := range sig.Defaults() {
		if _, ok := arg.Compiled(); !ok {
			t.Errorf("%s not compiled", arg.Name())
		}
	}

	// Already compiled: no further calls.
	if err := sig.CompileDefaults(t.Context(), c); err != nil {
		t.Fatalf("CompileDefaults: %v", err)
	}

	if c.calls.Load() != 2 {
		t.Errorf("compiler calls = %d after recompiling, want 2", c.calls.Load())
	}
}

func TestSignature_CompileDefaults_StopsOnError(t *testing.T) {
	sig := MustSignature(NewWithDefault("a", "1"), NewWithDefault("b", "2"))
	c := &countingCompiler{fail: errors.New("boom")}

	if err := sig.CompileDefaults(t.Context(), c); !errors.Is(err, ErrCompileDefault) {
		t.Fatalf("expected ErrCompileDefault, got %v", err)
	}

	if c.calls.Load() != 1 {
		t.Errorf("compiler calls = %d, want 1", c.calls.Load())
	}
}

func TestSignature_CompileDefaults_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	sig := MustSignature(NewWithDefault("a", "1"))

	if err := sig.CompileDefaults(ctx, constCompiler{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
