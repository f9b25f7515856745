package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Bring targets up to date, rebuilding the pipeline if the configuration changed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), args, force)
		},
	}
	cmd.Flags().Bool("force", false, "Skip the configuration fingerprint check")
	return cmd
}
