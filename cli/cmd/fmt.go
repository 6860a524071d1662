package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/stsig/codec"
	"github.com/ardnew/stsig/log"
	"github.com/ardnew/stsig/manifest"
	"github.com/ardnew/stsig/pkg"
)

// Formats lists the output formats accepted by [Fmt].
var Formats = []string{"native", "yaml", "json", "cbor", "diag"}

// Fmt writes the templates of its sources in the selected format.
//
// The native format prints one "name(arguments)" line per template, the way
// signatures are written in template source. The diag format prints the CBOR
// encoding in diagnostic notation.
type Fmt struct {
	Format   string   `default:"native" enum:"${fmtFormatEnum}" help:"Output format (${enum})."                        short:"f"`
	Indent   int      `default:"2"                              help:"Indent width of yaml and json; 0 is compact."   short:"i"`
	Annotate bool     `help:"Append cardinality suffixes to native output."  short:"a"`
	Sources  []string `arg:""                                   help:"Manifest files, or '-' for stdin." optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	m, err := load(ctx, f.Sources)
	if err != nil {
		return err
	}

	out := streamsFrom(ctx).Out

	switch f.Format {
	case "native":
		err = m.Format(out, f.Annotate)
	case "yaml":
		err = m.Encode(ctx, out, f.Indent)
	case "json":
		err = m.EncodeJSON(out, f.Indent)
	case "cbor":
		err = m.EncodeCBOR(out)
	case "diag":
		err = diagnose(m, out)
	default:
		return pkg.ErrInvalidFormat.Wrapf("%q: valid formats: %s",
			f.Format, strings.Join(Formats, ", "))
	}

	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	log.DebugContext(ctx, "formatted manifest",
		slog.String("format", f.Format),
		slog.Int("templates", len(m.Templates)),
	)

	return nil
}

func diagnose(m *manifest.Manifest, w io.Writer) error {
	var buf bytes.Buffer

	if err := m.EncodeCBOR(&buf); err != nil {
		return err
	}

	diag, err := codec.Diagnose(buf.Bytes())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, diag)

	return err
}
