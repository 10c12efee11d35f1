package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/apifix/cmd/apifix/opts"
	"github.com/walteh/apifix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Strip the /api/ prefix from HTTP wrapper calls",
		Long: `Fix rewrites calls like api.get('/api/users') to api.get('/users').
It will:
1. Resolve the target files (src/api/apiService.js by default)
2. Rewrite every matching call
3. Replace changed files atomically
4. Print a confirmation message`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunFix(cmd.Context(), opts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")

	return cmd
}

// RunFix runs the fix operation with the loaded options
func RunFix(ctx context.Context, opts *opts.RootOpts, dryRun bool) error {
	o, err := opts.Operation(ctx)
	if err != nil {
		return err
	}

	op, err := operation.NewFixOperation(o, dryRun)
	if err != nil {
		return errors.Errorf("creating fix operation: %w", err)
	}

	if _, err := op.Execute(ctx); err != nil {
		return errors.Errorf("fixing api paths: %w", err)
	}

	return nil
}
