package formal

import (
	"context"
	"encoding/binary"
	"iter"
	"log/slog"
	"strings"

	"github.com/zeebo/blake3"
)

// Signature is the ordered list of formal arguments declared by a template.
//
// A Signature is read-only after construction and safe for concurrent use.
type Signature struct {
	args    []*Argument
	index   map[string]int
	unknown bool
}

// Unknown is the placeholder signature of a template that declared no
// parameter list at all, such as one loaded from a standalone template file.
// It is distinct from a signature declaring zero arguments.
var Unknown = &Signature{unknown: true}

// NewSignature returns the signature declaring args in order.
//
// It returns [ErrInvalidName] if an argument is nil or has an empty name and
// [ErrDuplicateArgument] if two arguments share a name.
func NewSignature(args ...*Argument) (*Signature, error) {
	sig := &Signature{
		args:  make([]*Argument, 0, len(args)),
		index: make(map[string]int, len(args)),
	}

	for i, arg := range args {
		if arg == nil || arg.name == "" {
			return nil, ErrInvalidName.With(slog.Int("position", i))
		}

		if prev, ok := sig.index[arg.name]; ok {
			return nil, ErrDuplicateArgument.
				With(
					slog.String("argument", arg.name),
					slog.Int("first", prev),
					slog.Int("position", i),
				)
		}

		sig.index[arg.name] = len(sig.args)
		sig.args = append(sig.args, arg)
	}

	return sig, nil
}

// MustSignature is like [NewSignature] but panics on error.
func MustSignature(args ...*Argument) *Signature {
	sig, err := NewSignature(args...)
	if err != nil {
		panic(err)
	}

	return sig
}

// IsUnknown reports whether s is the [Unknown] placeholder. A nil signature
// is treated as unknown.
func (s *Signature) IsUnknown() bool {
	return s == nil || s.unknown
}

// Len returns the number of declared arguments.
func (s *Signature) Len() int {
	if s == nil {
		return 0
	}

	return len(s.args)
}

// At returns the argument at position i.
func (s *Signature) At(i int) *Argument {
	return s.args[i]
}

// All returns an iterator over the arguments and their positions, in
// declaration order.
func (s *Signature) All() iter.Seq2[int, *Argument] {
	return func(yield func(int, *Argument) bool) {
		if s == nil {
			return
		}

		for i, arg := range s.args {
			if !yield(i, arg) {
				return
			}
		}
	}
}

// Defaults returns an iterator over the arguments that declare a default
// value, in declaration order.
func (s *Signature) Defaults() iter.Seq[*Argument] {
	return func(yield func(*Argument) bool) {
		for _, arg := range s.All() {
			if arg.hasDefault && !yield(arg) {
				return
			}
		}
	}
}

// Names returns the argument names in declaration order.
func (s *Signature) Names() []string {
	names := make([]string, 0, s.Len())

	for _, arg := range s.All() {
		names = append(names, arg.name)
	}

	return names
}

// Lookup returns the argument named name.
func (s *Signature) Lookup(name string) (*Argument, bool) {
	i := s.Index(name)
	if i < 0 {
		return nil, false
	}

	return s.args[i], true
}

// Index returns the position of the argument named name, or -1.
func (s *Signature) Index(name string) int {
	if s == nil {
		return -1
	}

	if i, ok := s.index[name]; ok {
		return i
	}

	return -1
}

// Equal reports whether s and other declare pairwise [Argument.Equal]
// arguments in the same order. [Unknown] equals only itself.
//
// Like Argument.Equal, defaults are compared by presence only.
func (s *Signature) Equal(other *Signature) bool {
	if s.IsUnknown() || other.IsUnknown() {
		return s.IsUnknown() == other.IsUnknown()
	}

	if len(s.args) != len(other.args) {
		return false
	}

	for i, arg := range s.args {
		if !arg.Equal(other.args[i]) {
			return false
		}
	}

	return true
}

// Hash returns a 64-bit hash consistent with [Signature.Equal].
func (s *Signature) Hash() uint64 {
	h := blake3.New()

	if s.IsUnknown() {
		_, _ = h.Write([]byte{0xff})
	} else {
		buf := binary.AppendUvarint(nil, uint64(len(s.args)))
		for _, arg := range s.args {
			buf = arg.appendKey(buf)
		}

		_, _ = h.Write(buf)
	}

	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}

// String renders the signature as a parenthesized, comma-separated list of
// [Argument.String] forms, e.g. "(title, width=80)". [Unknown] renders as
// "(...)".
func (s *Signature) String() string {
	return s.render((*Argument).String)
}

// Annotated renders the signature like [Signature.String] using
// [Argument.Annotated] for each argument.
func (s *Signature) Annotated() string {
	return s.render((*Argument).Annotated)
}

func (s *Signature) render(format func(*Argument) string) string {
	if s.IsUnknown() {
		return "(...)"
	}

	var sb strings.Builder

	sb.WriteByte('(')

	for i, arg := range s.args {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(format(arg))
	}

	sb.WriteByte(')')

	return sb.String()
}

// CompileDefaults compiles the default value of every argument with c,
// stopping at the first failure.
// Arguments whose default is already compiled are left unchanged.
func (s *Signature) CompileDefaults(ctx context.Context, c Compiler) error {
	for arg := range s.Defaults() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := arg.CompiledDefault(ctx, c); err != nil {
			return err
		}
	}

	return nil
}
