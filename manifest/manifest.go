// Package manifest reads and writes documents describing the signatures of
// a collection of templates.
//
// A manifest is a YAML (or JSON) document such as:
//
//	templates:
//	  - name: page
//	    args:
//	      - name: title
//	      - name: width
//	        default: "80"
//	        cardinality: optional
//	  - name: raw
//
// A template without an args key has the [formal.Unknown] signature; an
// explicit empty list declares a template with no arguments.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/stsig/codec"
	"github.com/ardnew/stsig/formal"
)

// Sentinel errors.
var (
	ErrDecode       = formal.NewError("decode manifest")
	ErrEncode       = formal.NewError("encode manifest")
	ErrInvalidName  = formal.NewError("invalid template name")
	ErrRedefinition = formal.NewError("template redefined with a different signature")
)

// Template is the declaration of one template's signature.
type Template struct {
	Name string `json:"name" yaml:"name"`

	// Args is nil for a template that declared no parameter list.
	Args *formal.Signature `json:"args,omitempty" yaml:"args,omitempty"`
}

// Signature returns the declared signature, [formal.Unknown] if none.
func (t Template) Signature() *formal.Signature {
	if t.Args == nil {
		return formal.Unknown
	}

	return t.Args
}

// String renders the template as "name(arguments)".
func (t Template) String() string {
	return t.Name + t.Signature().String()
}

// Manifest is an ordered list of template declarations. A name may be
// declared more than once; see [Manifest.Check].
type Manifest struct {
	Templates []Template `json:"templates" yaml:"templates"`
}

// Decode reads a YAML manifest from r. JSON documents are valid YAML and are
// accepted as well.
func Decode(ctx context.Context, r io.Reader) (*Manifest, error) {
	var m Manifest

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &m); err != nil {
		if err == io.EOF {
			return &m, nil
		}

		return nil, ErrDecode.Wrap(err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// DecodeCBOR reads a manifest previously written by [Manifest.EncodeCBOR].
func DecodeCBOR(r io.Reader) (*Manifest, error) {
	var m Manifest

	if err := codec.NewDecoder(r).Decode(&m); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) validate() error {
	for i, t := range m.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return ErrInvalidName.With(slog.Int("position", i))
		}
	}

	return nil
}

// Encode writes m to w as YAML. A non-positive indent selects flow style.
func (m *Manifest) Encode(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, m, opts...)
	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", "yaml"))
	}

	_, err = w.Write(data)

	return err
}

// EncodeJSON writes m to w as JSON. A non-positive indent writes compact
// output.
func (m *Manifest) EncodeJSON(w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(m); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", "json"))
	}

	return nil
}

// EncodeCBOR writes m to w in deterministic CBOR.
func (m *Manifest) EncodeCBOR(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(m); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", "cbor"))
	}

	return nil
}

// Format writes one line per template in the form "name(arguments)". With
// annotate set, arguments carry their cardinality suffixes.
func (m *Manifest) Format(w io.Writer, annotate bool) error {
	for _, t := range m.Templates {
		sig := t.Signature().String()
		if annotate {
			sig = t.Signature().Annotated()
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", t.Name, sig); err != nil {
			return err
		}
	}

	return nil
}

// All returns an iterator over the template declarations in order.
func (m *Manifest) All() iter.Seq2[int, Template] {
	return func(yield func(int, Template) bool) {
		for i, t := range m.Templates {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Lookup returns the first declaration of the template named name.
func (m *Manifest) Lookup(name string) (Template, bool) {
	for _, t := range m.All() {
		if t.Name == name {
			return t, true
		}
	}

	return Template{}, false
}
