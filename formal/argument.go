package formal

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
)

// Argument is one formal parameter of a template.
//
// An Argument is immutable after construction, except that the compiled form
// of its default value is filled in at most once by [Argument.CompiledDefault].
// It is safe for concurrent use and must not be copied.
type Argument struct {
	name        string
	value       string
	hasDefault  bool
	cardinality Cardinality

	mu       sync.Mutex
	compiled Program
}

// Option configures an [Argument] at construction.
type Option func(*Argument)

// WithCardinality records the declared cardinality of the argument.
func WithCardinality(c Cardinality) Option {
	return func(a *Argument) {
		a.cardinality = c
	}
}

// New returns an argument named name with no default value.
//
// The name is not validated; producers such as [NewSignature] report empty
// or duplicate names.
func New(name string, opts ...Option) *Argument {
	a := &Argument{name: name}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// NewWithDefault returns an argument named name whose default value is the
// literal source text value. The text is stored verbatim; it is neither
// parsed nor evaluated here. An empty value is still a present default.
func NewWithDefault(name, value string, opts ...Option) *Argument {
	a := New(name, opts...)
	a.value = value
	a.hasDefault = true

	return a
}

// Name returns the argument's name.
func (a *Argument) Name() string { return a.name }

// Default returns the literal default value and whether one is present.
func (a *Argument) Default() (value string, ok bool) {
	return a.value, a.hasDefault
}

// HasDefault reports whether the argument declares a default value.
func (a *Argument) HasDefault() bool { return a.hasDefault }

// Cardinality returns the declared cardinality, [Unset] if none.
func (a *Argument) Cardinality() Cardinality { return a.cardinality }

// Equal reports whether a and other have the same name and agree on whether
// a default value is present.
//
// The default values themselves are NOT compared: two arguments with the
// same name and different defaults are equal. Neither the compiled default
// nor the cardinality takes part in the comparison. Two nil arguments are
// equal; a nil and a non-nil argument are not.
func (a *Argument) Equal(other *Argument) bool {
	if a == nil || other == nil {
		return a == other
	}

	return a.name == other.name && a.hasDefault == other.hasDefault
}

// Key identifies an argument up to [Argument.Equal]. Keys of equal arguments
// are identical, so Key can index maps and sets of arguments.
type Key struct {
	Name       string
	HasDefault bool
}

// Key returns the comparable identity of a.
func (a *Argument) Key() Key {
	return Key{Name: a.name, HasDefault: a.hasDefault}
}

// Hash returns a 64-bit hash of the fields compared by [Argument.Equal]:
// the name and the presence of a default. It never fails, whether or not a
// default is present, and equal arguments always hash equally.
func (a *Argument) Hash() uint64 {
	sum := blake3.Sum256(a.appendKey(nil))

	return binary.LittleEndian.Uint64(sum[:8])
}

// appendKey appends an unambiguous encoding of a's equality fields to buf.
func (a *Argument) appendKey(buf []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(a.name)))
	buf = append(buf, a.name...)

	if a.hasDefault {
		return append(buf, 1)
	}

	return append(buf, 0)
}

// String renders the argument as "name=default" when a default is present,
// or "name" otherwise. The default is shown exactly as stored, unquoted.
// The result is for display only and is not meant to be parsed.
func (a *Argument) String() string {
	if a.hasDefault {
		return a.name + "=" + a.value
	}

	return a.name
}

// Annotated renders the argument like [Argument.String] with the cardinality
// suffix placed after the name, e.g. "items*" or "title?=none". Arguments
// whose cardinality has no applicable suffix render without one.
func (a *Argument) Annotated() string {
	var sb strings.Builder

	sb.WriteString(a.name)

	if suffix, ok := a.cardinality.Suffix(); ok {
		sb.WriteString(suffix)
	}

	if a.hasDefault {
		sb.WriteByte('=')
		sb.WriteString(a.value)
	}

	return sb.String()
}
