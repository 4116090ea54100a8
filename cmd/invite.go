package cmd

import (
	"ai-access-manager/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	inviteStatus string
	inviteFilter string
)

// inviteCmd is the parent command for invite operations.
var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Inspect invites across providers",
}

var inviteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invites by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Listing invites")
		report, err := rt.engine.Invites(cmd.Context(), reconcile.InviteOptions{
			Status:    inviteStatus,
			Filter:    inviteFilter,
			Providers: providerFlag,
		})
		stop()
		if err != nil {
			return err
		}
		if err := renderInvites(report); err != nil {
			return err
		}
		return failedErr(report)
	},
}

func init() {
	RootCmd.AddCommand(inviteCmd)
	inviteCmd.AddCommand(inviteListCmd)

	inviteListCmd.Flags().StringVar(&inviteStatus, "status", "pending", "Invite status: pending, accepted, expired or deleted")
	inviteListCmd.Flags().StringVar(&inviteFilter, "filter", "", "Only show emails containing this text")
}
