package formal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ardnew/stsig/codec"
)

// argumentDoc is the serialized form of an Argument shared by JSON, YAML,
// and CBOR. A nil Default means no default is present.
type argumentDoc struct {
	Name        string  `json:"name"                  yaml:"name"`
	Default     *string `json:"default,omitempty"     yaml:"default,omitempty"`
	Cardinality string  `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
}

// yamlArgumentDoc is the YAML form of argumentDoc. Default is decoded
// untyped so that a plain scalar, which YAML would resolve to a number or
// boolean and lose its original spelling, can be rejected rather than
// stored in a converted form.
type yamlArgumentDoc struct {
	Name        string `yaml:"name"`
	Default     any    `yaml:"default"`
	Cardinality string `yaml:"cardinality"`
}

func (y yamlArgumentDoc) doc() (argumentDoc, error) {
	d := argumentDoc{Name: y.Name, Cardinality: y.Cardinality}

	switch v := y.Default.(type) {
	case nil:
	case string:
		d.Default = &v
	default:
		return d, ErrDecode.
			Wrap(fmt.Errorf("default is %T, not a quoted string", v)).
			With(slog.String("argument", y.Name))
	}

	return d, nil
}

func (a *Argument) doc() (argumentDoc, error) {
	d := argumentDoc{Name: a.name}

	if a.hasDefault {
		value := a.value
		d.Default = &value
	}

	label, err := a.cardinality.MarshalText()
	if err != nil {
		return d, err
	}

	d.Cardinality = string(label)

	return d, nil
}

// setDoc initializes a zero Argument from d. An argument that already has a
// name or a compiled default is never overwritten.
func (a *Argument) setDoc(d argumentDoc) error {
	c, err := ParseCardinality(d.Cardinality)
	if err != nil {
		return ErrDecode.Wrap(err).With(slog.String("argument", d.Name))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.name != "" || a.compiled != nil {
		return ErrDecode.
			Wrap(fmt.Errorf("argument %q already initialized", a.name)).
			With(slog.String("argument", d.Name))
	}

	a.name = d.Name
	a.value, a.hasDefault = "", false

	if d.Default != nil {
		a.value, a.hasDefault = *d.Default, true
	}

	a.cardinality = c

	return nil
}

// MarshalJSON implements [json.Marshaler].
func (a *Argument) MarshalJSON() ([]byte, error) {
	d, err := a.doc()
	if err != nil {
		return nil, err
	}

	return json.Marshal(d)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (a *Argument) UnmarshalJSON(data []byte) error {
	var d argumentDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return ErrDecode.Wrap(err)
	}

	return a.setDoc(d)
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (a *Argument) MarshalYAML() (any, error) {
	return a.doc()
}

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
// A default must be a quoted string so that its source text is kept as
// written.
func (a *Argument) UnmarshalYAML(unmarshal func(any) error) error {
	var y yamlArgumentDoc
	if err := unmarshal(&y); err != nil {
		return ErrDecode.Wrap(err)
	}

	d, err := y.doc()
	if err != nil {
		return err
	}

	return a.setDoc(d)
}

// MarshalCBOR implements the fxamacker/cbor Marshaler.
func (a *Argument) MarshalCBOR() ([]byte, error) {
	d, err := a.doc()
	if err != nil {
		return nil, err
	}

	return codec.Marshal(d)
}

// UnmarshalCBOR implements the fxamacker/cbor Unmarshaler.
func (a *Argument) UnmarshalCBOR(data []byte) error {
	var d argumentDoc
	if err := codec.Unmarshal(data, &d); err != nil {
		return ErrDecode.Wrap(err)
	}

	return a.setDoc(d)
}

func (s *Signature) docs() ([]argumentDoc, error) {
	if s.IsUnknown() {
		return nil, nil
	}

	docs := make([]argumentDoc, 0, len(s.args))

	for _, arg := range s.args {
		d, err := arg.doc()
		if err != nil {
			return nil, err
		}

		docs = append(docs, d)
	}

	return docs, nil
}

// setDocs initializes a zero Signature from docs. A nil docs slice makes s
// unknown. A signature that is already populated, including [Unknown], is
// never overwritten.
func (s *Signature) setDocs(docs []argumentDoc) error {
	if s.unknown || s.index != nil {
		return ErrDecode.Wrap(fmt.Errorf("signature %s already initialized", s))
	}

	if docs == nil {
		*s = Signature{unknown: true}

		return nil
	}

	args := make([]*Argument, len(docs))

	for i, d := range docs {
		args[i] = new(Argument)
		if err := args[i].setDoc(d); err != nil {
			return err
		}
	}

	sig, err := NewSignature(args...)
	if err != nil {
		return ErrDecode.Wrap(err)
	}

	*s = Signature{args: sig.args, index: sig.index}

	return nil
}

// MarshalJSON implements [json.Marshaler]. [Unknown] encodes as null and
// an empty signature as [].
func (s *Signature) MarshalJSON() ([]byte, error) {
	docs, err := s.docs()
	if err != nil {
		return nil, err
	}

	return json.Marshal(docs)
}

// UnmarshalJSON implements [json.Unmarshaler]. null decodes as unknown.
func (s *Signature) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return s.setDocs(nil)
	}

	docs := []argumentDoc{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return ErrDecode.Wrap(err)
	}

	return s.setDocs(docs)
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (s *Signature) MarshalYAML() (any, error) {
	docs, err := s.docs()
	if err != nil || docs == nil {
		return nil, err
	}

	return docs, nil
}

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (s *Signature) UnmarshalYAML(unmarshal func(any) error) error {
	var ydocs []yamlArgumentDoc
	if err := unmarshal(&ydocs); err != nil {
		return ErrDecode.Wrap(err)
	}

	docs := make([]argumentDoc, len(ydocs))

	for i, y := range ydocs {
		d, err := y.doc()
		if err != nil {
			return err
		}

		docs[i] = d
	}

	return s.setDocs(docs)
}

// MarshalCBOR implements the fxamacker/cbor Marshaler. [Unknown] encodes as
// CBOR null.
func (s *Signature) MarshalCBOR() ([]byte, error) {
	docs, err := s.docs()
	if err != nil {
		return nil, err
	}

	return codec.Marshal(docs)
}

// UnmarshalCBOR implements the fxamacker/cbor Unmarshaler.
func (s *Signature) UnmarshalCBOR(data []byte) error {
	var docs []argumentDoc
	if err := codec.Unmarshal(data, &docs); err != nil {
		return ErrDecode.Wrap(err)
	}

	return s.setDocs(docs)
}
