// Package eval compiles and evaluates the default values of formal arguments
// using expr-lang.
//
// A default value is treated as an expr-lang expression. It may refer to the
// other arguments of the same template invocation by name:
//
//	sig := formal.MustSignature(
//		formal.New("name"),
//		formal.NewWithDefault("greeting", `"Hello, " + name + "!"`),
//	)
//
//	c := eval.NewCompiler()
//	args, err := c.Bind(ctx, sig, map[string]any{"name": "World"})
//	// args["greeting"] == "Hello, World!"
//
// [Compiler] implements [formal.Compiler], so each default is compiled once,
// on first use, and the compiled program is kept by its argument.
package eval
