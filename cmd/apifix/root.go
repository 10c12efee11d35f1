package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/walteh/apifix/cmd/apifix/commands"
	"github.com/walteh/apifix/cmd/apifix/opts"
)

// newRootCmd creates the apifix command tree. Running it without a
// subcommand is the same as running fix.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{
		Stdout: stdout,
		Stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "apifix",
		Short: "Remove the /api/ prefix from endpoint paths in API service files",
		Long: `apifix rewrites HTTP wrapper calls such as api.get('/api/users') to
api.get('/users') in src/api/apiService.js, or in the files listed in a
config file (.yaml, .yml, .json or .hcl).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := rootOpts.Setup(cmd.Context())
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFix(cmd.Context(), rootOpts, false)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewFixCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(stdout),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: fix src/api/apiService.js)")
	cmd.PersistentFlags().StringVarP(&o.Chdir, "chdir", "C", "", "run as if started in this directory")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}
