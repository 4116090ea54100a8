package cmd

import (
	"fmt"

	"ai-access-manager/core/reconcile"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	yesConfirm   bool
	dryRunRemove bool
	listFilter   string
	listCached   bool
)

// userCmd is the parent command for user operations.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users across providers",
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Invite a user on every provider",
	Long: `Invites the user on each selected provider. Providers where the user is
already a member or already has a pending invite are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Inviting " + args[0])
		report, err := rt.engine.Add(cmd.Context(), args[0], providerFlag)
		stop()
		if err != nil {
			return err
		}
		if err := renderOutcomes(report); err != nil {
			return err
		}
		return failedErr(report)
	},
}

var userAssignCmd = &cobra.Command{
	Use:   "assign <email>",
	Short: "Give a member their own workspace or project",
	Long: `Creates a workspace (Anthropic) or project (OpenAI) named after the member and
adds them to it. Members who already have one are skipped; non-members fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Assigning workspace to " + args[0])
		report, err := rt.engine.Assign(cmd.Context(), args[0], providerFlag)
		stop()
		if err != nil {
			return err
		}
		if err := renderOutcomes(report); err != nil {
			return err
		}
		return failedErr(report)
	},
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Remove a user and their workspace",
	Long: `Archives the user's workspace, then removes the account. Users with only a
pending invite lose the invite. The plan is printed and confirmed first.

Examples:
  # Show what would be removed
  aimgr user remove jane@example.com --dry-run

  # Remove without prompting
  aimgr user remove jane@example.com --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		plan, err := rt.engine.PlanRemoval(ctx, args[0], providerFlag)
		if err != nil {
			return err
		}
		if err := renderPlan(plan); err != nil {
			return err
		}

		if dryRunRemove {
			rt.logger.Info("Dry-run mode: No changes were made.")
			return nil
		}
		if plan.ActionCount() == 0 {
			rt.logger.Info("Nothing to remove.")
			return nil
		}
		if !confirmDestructiveAction(fmt.Sprintf("Apply %d removal actions?", plan.ActionCount())) {
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		report, err := rt.engine.ApplyRemoval(ctx, plan)
		if err != nil {
			return err
		}
		if err := renderOutcomes(report); err != nil {
			return err
		}
		rt.logger.Debug("Removal finished", zap.String("email", plan.Email), zap.Int("failed", report.Count(reconcile.StatusError)))
		return failedErr(report)
	},
}

var userInfoCmd = &cobra.Command{
	Use:   "info <email>",
	Short: "Show a user's membership, workspace, keys and spend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Looking up " + args[0])
		report, err := rt.engine.Info(cmd.Context(), args[0], providerFlag)
		stop()
		if err != nil {
			return err
		}
		if err := renderInfo(report); err != nil {
			return err
		}
		return failedErr(report)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users merged across providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Syncing users")
		report, err := rt.engine.List(cmd.Context(), reconcile.ListOptions{
			Filter:    listFilter,
			Providers: providerFlag,
			Cached:    listCached,
		})
		stop()
		if err != nil {
			return err
		}
		if err := renderUsers(report); err != nil {
			return err
		}
		return failedErr(report)
	},
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(question string) bool {
	if yesConfirm {
		pterm.Info.Println("Auto-confirmed via --yes flag")
		return true
	}

	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
	if err != nil {
		return false
	}
	return ok
}

func init() {
	RootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd, userAssignCmd, userRemoveCmd, userInfoCmd, userListCmd)

	userRemoveCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	userRemoveCmd.Flags().BoolVar(&dryRunRemove, "dry-run", false, "Print the removal plan without applying it")
	userListCmd.Flags().StringVar(&listFilter, "filter", "", "Only show emails containing this text")
	userListCmd.Flags().BoolVar(&listCached, "cached", false, "Read the stored list instead of syncing")
}
