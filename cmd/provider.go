package cmd

import (
	"fmt"
	"slices"

	"ai-access-manager/core/config"
	"ai-access-manager/feature/providers"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// providerCmd is the parent command for provider operations.
var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Inspect configured providers",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported providers and whether they are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		configured := providers.Configured(cfg)
		if jsonFlag {
			return printJSON(map[string]any{"supported": providers.Supported(), "configured": configured})
		}

		data := pterm.TableData{{"Provider", "Configured"}}
		for _, name := range providers.Supported() {
			state := pterm.Red("no")
			if slices.Contains(configured, name) {
				state = pterm.Green("yes")
			}
			data = append(data, []string{name, state})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var providerCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check credentials and connectivity of configured providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		stop := spin("Checking providers")
		report, err := rt.engine.Health(cmd.Context(), providerFlag)
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

func init() {
	RootCmd.AddCommand(providerCmd)
	providerCmd.AddCommand(providerListCmd, providerCheckCmd)
}
