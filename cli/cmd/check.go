package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/stsig/log"
	"github.com/ardnew/stsig/pkg"
)

// Check reports every template declared again with a signature that differs
// from its first declaration. Signatures differ when argument names or their
// order differ, or when an argument gains or loses a default. A changed
// default value alone is not reported.
type Check struct {
	Sources []string `arg:"" help:"Manifest files, or '-' for stdin." optional:""`
}

// Run executes the check command. It returns [pkg.ErrRedefined] if anything
// was reported.
func (c *Check) Run(ctx context.Context) error {
	m, err := load(ctx, c.Sources)
	if err != nil {
		return err
	}

	found := m.Check()

	out := streamsFrom(ctx).Out

	for _, r := range found {
		if _, err := fmt.Fprintln(out, r.String()); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		log.DebugContext(ctx, "template redefined", slog.Any("error", r.Err()))
	}

	if len(found) > 0 {
		return pkg.ErrRedefined.Wrapf("%d of %d declarations",
			len(found), len(m.Templates))
	}

	log.DebugContext(ctx, "signatures consistent",
		slog.Int("templates", len(m.Templates)),
	)

	return nil
}
