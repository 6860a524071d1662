package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/stsig/pkg"
)

// Version prints the command name and version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	name := pkg.Name
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Model != nil {
		name = ktx.Model.Name
	}

	if _, err := fmt.Fprintf(streamsFrom(ctx).Out, "%s %s\n", name, pkg.Version()); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
