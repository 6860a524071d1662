package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stsig/log"
	"github.com/ardnew/stsig/manifest"
	"github.com/ardnew/stsig/pkg"
)

type (
	kongContextKey struct{}
	streamsKey     struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(kongContextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard input and output used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// WithStreams returns a new context.Context whose commands read stdin from in
// and write results to out. A nil stream selects the process default.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, Streams{In: in, Out: out})
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// cborExt is the file extension of manifests encoded with fmt --format=cbor.
const cborExt = ".cbor"

// load decodes every source in order and concatenates their templates into a
// single manifest. No sources means stdin. A file named more than once, by any
// path that resolves to it, is read only once, as is stdin.
func load(ctx context.Context, sources []string) (*manifest.Manifest, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	var (
		merged manifest.Manifest
		seen   []os.FileInfo
		stdin  bool
	)

	for _, src := range sources {
		var (
			m   *manifest.Manifest
			err error
		)

		switch {
		case src == stdinSource:
			if stdin {
				continue
			}

			stdin = true

			m, err = manifest.Decode(ctx, streamsFrom(ctx).In)
			if err != nil {
				return nil, pkg.ErrReadStdin.Wrap(err)
			}

		default:
			info, err := os.Stat(src)
			if err != nil {
				return nil, pkg.ErrReadInput.Wrap(err)
			}

			if isDuplicate(info, seen) {
				log.DebugContext(ctx, "skipping duplicate source",
					slog.String("source", src),
				)

				continue
			}

			seen = append(seen, info)

			m, err = loadFile(ctx, src)
			if err != nil {
				return nil, pkg.ErrReadInput.Wrap(err)
			}
		}

		log.DebugContext(ctx, "loaded manifest",
			slog.String("source", src),
			slog.Int("templates", len(m.Templates)),
		)

		merged.Templates = append(merged.Templates, m.Templates...)
	}

	return &merged, nil
}

func loadFile(ctx context.Context, path string) (*manifest.Manifest, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), cborExt) {
		return manifest.DecodeCBOR(f)
	}

	return manifest.Decode(ctx, f)
}

func isDuplicate(info os.FileInfo, seen []os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(info, s) {
			return true
		}
	}

	return false
}
