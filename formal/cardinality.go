package formal

import (
	"log/slog"
	"strings"
)

// Cardinality classifies how many values a formal argument may bind to.
//
// It is recorded and serialized but never enforced. The zero value, [Unset],
// means no cardinality was declared.
type Cardinality uint8

const (
	Unset      Cardinality = iota // unset
	Optional                      // a?
	ExactlyOne                    // a
	ZeroOrMore                    // a*
	OneOrMore                     // a+
)

// Legacy bit-flag encodings of each cardinality, as written by older
// serializations that stored the cardinality as a bitset.
const (
	BitOptional   = 1 << iota // 1
	BitExactlyOne             // 2
	BitZeroOrMore             // 4
	BitOneOrMore              // 8
)

type cardinalityInfo struct {
	label  string
	suffix string
	bits   int
}

var cardinalities = map[Cardinality]cardinalityInfo{
	Optional:   {"optional", "?", BitOptional},
	ExactlyOne: {"exactly one", "", BitExactlyOne},
	ZeroOrMore: {"zero-or-more", "*", BitZeroOrMore},
	OneOrMore:  {"one-or-more", "+", BitOneOrMore},
}

// String returns the human-readable label of c, or "unknown" if c is not one
// of the four defined cardinalities.
func (c Cardinality) String() string {
	if info, ok := cardinalities[c]; ok {
		return info.label
	}

	return "unknown"
}

// Suffix returns the annotation appended to an argument name when a
// signature is displayed with cardinalities: "?", "", "*", or "+".
//
// For [Unset] and any undefined value the suffix is not applicable, reported
// as ok == false. Note that [ExactlyOne] has an empty but applicable suffix.
func (c Cardinality) Suffix() (suffix string, ok bool) {
	info, ok := cardinalities[c]

	return info.suffix, ok
}

// IsValid reports whether c is one of the four defined cardinalities.
func (c Cardinality) IsValid() bool {
	_, ok := cardinalities[c]

	return ok
}

// Bits returns the legacy bit-flag encoding of c, or 0 if c is not defined.
func (c Cardinality) Bits() int {
	return cardinalities[c].bits
}

// CardinalityFromBits converts a legacy bit-flag value to a Cardinality.
// Combinations of flags and unknown values yield [Unset].
func CardinalityFromBits(bits int) Cardinality {
	for c, info := range cardinalities {
		if info.bits == bits {
			return c
		}
	}

	return Unset
}

// CardinalityName returns the label of a legacy bit-flag value, or "unknown"
// for any value other than a single defined flag.
func CardinalityName(bits int) string {
	return CardinalityFromBits(bits).String()
}

// ParseCardinality parses a label ("optional", "exactly one",
// "exactly-one", "zero-or-more", "one-or-more") or a suffix character ("?",
// "*", "+"). The empty string parses as [Unset].
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unset, nil
	case "optional", "?":
		return Optional, nil
	case "exactly one", "exactly-one", "exactly_one", "required":
		return ExactlyOne, nil
	case "zero-or-more", "zero_or_more", "*":
		return ZeroOrMore, nil
	case "one-or-more", "one_or_more", "+":
		return OneOrMore, nil
	default:
		return Unset, ErrInvalidCardinality.With(slog.String("value", s))
	}
}

// MarshalText implements [encoding.TextMarshaler]. [Unset] encodes as the
// empty string.
func (c Cardinality) MarshalText() ([]byte, error) {
	if c == Unset {
		return []byte{}, nil
	}

	info, ok := cardinalities[c]
	if !ok {
		return nil, ErrInvalidCardinality.With(slog.Int("value", int(c)))
	}

	return []byte(info.label), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using
// [ParseCardinality].
func (c *Cardinality) UnmarshalText(text []byte) error {
	parsed, err := ParseCardinality(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
