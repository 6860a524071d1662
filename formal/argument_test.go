package formal

import (
	"fmt"
	"testing"
)

var argumentNames = []string{"a", "x", "title", "width", "_private", "ünïcode"}

func TestArgument_Equal_SameName(t *testing.T) {
	for _, n := range argumentNames {
		if !New(n).Equal(New(n)) {
			t.Errorf("New(%q) != New(%q)", n, n)
		}
	}
}

func TestArgument_Equal_DifferentNames(t *testing.T) {
	for i, n1 := range argumentNames {
		for j, n2 := range argumentNames {
			if i == j {
				continue
			}

			if New(n1).Equal(New(n2)) {
				t.Errorf("New(%q) == New(%q)", n1, n2)
			}
		}
	}
}

func TestArgument_Equal_ComparesDefaultPresenceOnly(t *testing.T) {
	a := NewWithDefault("n", "1")
	b := NewWithDefault("n", "2")

	if !a.Equal(b) {
		t.Errorf("%v and %v should be equal", a, b)
	}

	if a.String() == b.String() {
		t.Errorf("expected distinct renderings, both %q", a.String())
	}
}

func TestArgument_Equal_PresenceMismatch(t *testing.T) {
	for _, d := range []string{"", "0", "x", `"quoted"`} {
		t.Run(fmt.Sprintf("default=%q", d), func(t *testing.T) {
			plain := New("n")
			withDefault := NewWithDefault("n", d)

			if plain.Equal(withDefault) || withDefault.Equal(plain) {
				t.Errorf("%v and %v should differ", plain, withDefault)
			}
		})
	}
}

func TestArgument_Equal_IgnoresCardinalityAndCompiled(t *testing.T) {
	a := New("items", WithCardinality(ZeroOrMore))
	b := New("items", WithCardinality(OneOrMore))

	if !a.Equal(b) {
		t.Error("cardinality must not affect equality")
	}

	c := NewWithDefault("x", "1")
	d := NewWithDefault("x", "1")

	if _, err := c.CompiledDefault(t.Context(), constCompiler{}); err != nil {
		t.Fatalf("CompiledDefault: %v", err)
	}

	if !c.Equal(d) {
		t.Error("compiled default must not affect equality")
	}
}

func TestArgument_Equal_Nil(t *testing.T) {
	var a, b *Argument

	if !a.Equal(b) {
		t.Error("nil arguments should be equal")
	}

	if New("x").Equal(nil) || a.Equal(New("x")) {
		t.Error("nil and non-nil arguments should differ")
	}
}

func TestArgument_Hash_ConsistentWithEqual(t *testing.T) {
	pairs := []struct {
		name string
		a, b *Argument
	}{
		{"no defaults", New("x"), New("x")},
		{"same default", NewWithDefault("x", "5"), NewWithDefault("x", "5")},
		{"different defaults", NewWithDefault("x", "5"), NewWithDefault("x", "6")},
		{"empty default", NewWithDefault("x", ""), NewWithDefault("x", "6")},
		{"cardinality", New("x", WithCardinality(Optional)), New("x")},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.a.Equal(tt.b) {
				t.Fatalf("precondition: %v should equal %v", tt.a, tt.b)
			}

			if tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal arguments hash differently: %x vs %x", tt.a.Hash(), tt.b.Hash())
			}

			if tt.a.Key() != tt.b.Key() {
				t.Errorf("equal arguments have different keys: %v vs %v", tt.a.Key(), tt.b.Key())
			}
		})
	}
}

func TestArgument_Hash_DistinguishesPresence(t *testing.T) {
	if New("x").Hash() == NewWithDefault("x", "").Hash() {
		t.Error("expected presence of a default to change the hash")
	}

	if New("ab").Hash() == New("a").Hash() {
		t.Error("expected different names to hash differently")
	}
}

func TestArgument_Key_IndexesSets(t *testing.T) {
	set := map[Key]struct{}{}

	for _, arg := range []*Argument{
		New("a"),
		New("a"),
		NewWithDefault("a", "1"),
		NewWithDefault("a", "2"),
		New("b"),
	} {
		set[arg.Key()] = struct{}{}
	}

	if len(set) != 3 {
		t.Errorf("expected 3 distinct keys, got %d: %v", len(set), set)
	}
}

func TestArgument_String(t *testing.T) {
	tests := []struct {
		arg  *Argument
		want string
	}{
		{New("x"), "x"},
		{NewWithDefault("x", "5"), "x=5"},
		{NewWithDefault("x", ""), "x="},
		{NewWithDefault("body", `"<p>$text$</p>"`), `body="<p>$text$</p>"`},
		{New("items", WithCardinality(ZeroOrMore)), "items"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.arg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgument_Annotated(t *testing.T) {
	tests := []struct {
		arg  *Argument
		want string
	}{
		{New("x"), "x"},
		{New("x", WithCardinality(Optional)), "x?"},
		{New("x", WithCardinality(ExactlyOne)), "x"},
		{New("x", WithCardinality(ZeroOrMore)), "x*"},
		{New("x", WithCardinality(OneOrMore)), "x+"},
		{New("x", WithCardinality(Cardinality(42))), "x"},
		{NewWithDefault("x", "none", WithCardinality(Optional)), "x?=none"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.arg.Annotated(); got != tt.want {
				t.Errorf("Annotated() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgument_Accessors(t *testing.T) {
	a := NewWithDefault("width", "80", WithCardinality(Optional))

	if a.Name() != "width" {
		t.Errorf("Name() = %q", a.Name())
	}

	if v, ok := a.Default(); !ok || v != "80" {
		t.Errorf("Default() = %q, %v", v, ok)
	}

	if !a.HasDefault() {
		t.Error("HasDefault() = false")
	}

	if a.Cardinality() != Optional {
		t.Errorf("Cardinality() = %v", a.Cardinality())
	}

	b := New("height")

	if v, ok := b.Default(); ok || v != "" {
		t.Errorf("Default() = %q, %v; want absent", v, ok)
	}

	if b.Cardinality() != Unset {
		t.Errorf("Cardinality() = %v, want unset", b.Cardinality())
	}
}
