package manifest

import (
	"fmt"
	"log/slog"
)

// Redefinition reports a template declared again with a signature that is
// not [formal.Signature.Equal] to its first declaration.
type Redefinition struct {
	Name      string
	First     Template
	Redefined Template

	// Positions of the two declarations within the manifest.
	FirstIndex, Index int
}

// String describes the redefinition for diagnostics.
func (r Redefinition) String() string {
	return fmt.Sprintf("%s: declared %s at #%d, redeclared %s at #%d",
		r.Name,
		r.First.Signature(), r.FirstIndex,
		r.Redefined.Signature(), r.Index,
	)
}

// Err returns the redefinition as an [ErrRedefinition] error.
func (r Redefinition) Err() error {
	return ErrRedefinition.With(
		slog.String("template", r.Name),
		slog.String("first", r.First.Signature().String()),
		slog.Int("first_index", r.FirstIndex),
		slog.String("redefined", r.Redefined.Signature().String()),
		slog.Int("index", r.Index),
	)
}

// Check compares every repeated declaration of a template with the first one
// and reports those whose signatures differ.
//
// Signatures are compared with [formal.Signature.Equal]: argument names and
// order must match and each argument must agree on whether it has a default.
// Differing default values are not a redefinition.
func (m *Manifest) Check() []Redefinition {
	first := make(map[string]int, len(m.Templates))

	var found []Redefinition

	for i, t := range m.All() {
		j, seen := first[t.Name]
		if !seen {
			first[t.Name] = i

			continue
		}

		orig := m.Templates[j]
		if !orig.Signature().Equal(t.Signature()) {
			found = append(found, Redefinition{
				Name:       t.Name,
				First:      orig,
				Redefined:  t,
				FirstIndex: j,
				Index:      i,
			})
		}
	}

	return found
}
