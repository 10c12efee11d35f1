package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/apifix/cmd/apifix/opts"
	"github.com/walteh/apifix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report files that still contain prefixed endpoints",
		Long: `Check runs the same rewrite as fix without writing anything.
It prints one row per target and exits non-zero when any file still
needs fixing, which makes it usable as a CI gate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := opts.Operation(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewCheckOperation(o)
			if err != nil {
				return errors.Errorf("creating check operation: %w", err)
			}

			if _, err := op.Execute(ctx); err != nil {
				return errors.Errorf("checking api paths: %w", err)
			}

			return nil
		},
	}

	return cmd
}
