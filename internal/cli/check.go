// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"gioui.org/blocks/scene"
)

var errCheckFailed = errors.New("check failed")

// checkCommand creates the check command for verifying layout results.
func (c *CLI) checkCommand() *cobra.Command {
	var flags sceneFlags
	cmd := &cobra.Command{
		Use:   "check [scene.toml]",
		Short: "Verify that a scene lays out consistently",
		Long: `Verify that a scene lays out consistently.

The scene is laid out repeatedly: a second pass over clean caches must
not move any node, and a pass after dropping every cache must agree
with the cached one. Invariant violations reported by the layout engine
are logged and counted.`,
		Args: flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runCheck(ctx context.Context, out, logs io.Writer, flags *sceneFlags, args []string) error {
	logger := loggerFromContext(ctx)
	s, err := flags.load(args)
	if err != nil {
		return err
	}
	p := newProgress(logger)
	r := scene.Check(s, logs)
	p.done("check", "nodes", r.Nodes)
	if r.OK() {
		printSuccess(out, "%d nodes laid out consistently", r.Nodes)
		return nil
	}
	if r.Violations > 0 {
		printWarning(out, "%d invariant violations", r.Violations)
	}
	for _, msg := range r.Problems {
		printError(out, "%s", msg)
	}
	return errCheckFailed
}
