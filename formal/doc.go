// Package formal describes the formal arguments of a string template: the
// named parameters a template declares, their optional default values, and
// the ordered sets of them that make up a template's signature.
//
// A template compiler produces [Argument] values while reading a parameter
// list such as
//
//	page(title, width="80", body) ::= "..."
//
// and a renderer reads them back to bind call-site values, substituting the
// default of any argument the caller omits.
//
// # Equality
//
// [Argument.Equal] compares only the argument's name and whether a default
// value is present. The contents of the default, its compiled form, and the
// argument's cardinality are ignored. Two arguments may therefore be equal
// while carrying different defaults:
//
//	formal.NewWithDefault("x", "1").Equal(formal.NewWithDefault("x", "2")) // true
//	formal.New("x").Equal(formal.NewWithDefault("x", "1"))                 // false
//
// This is the comparison used to decide whether two declarations of a
// template have the same signature. [Argument.Hash] and [Argument.Key] are
// derived from the same two fields, so equal arguments always hash equally.
//
// # Compiled Defaults
//
// A default value is stored verbatim as source text. When a renderer needs
// to evaluate it as a nested template or expression, it asks the argument for
// its compiled form with [Argument.CompiledDefault], supplying a [Compiler].
// The first successful compilation is kept and returned for the lifetime of
// the argument. [Signature.CompileDefaults] performs the same step eagerly for
// every argument of a signature.
//
// # Cardinality
//
// Each argument records a [Cardinality] (optional, exactly one, zero-or-more,
// one-or-more). It is carried through serialization and can be shown with
// [Argument.Annotated], but nothing in this package enforces it.
package formal
