package cmd

import (
	"fmt"
	"os"

	"ai-access-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	providerFlag []string
	jsonFlag     bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "aimgr",
	Short: "AI provider access manager",
	Long: `aimgr keeps organization membership on AI providers (OpenAI, Anthropic) in line
with one email-keyed identity: invite, assign a personal workspace, inspect and remove users.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug config gives ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringSliceVarP(&providerFlag, "provider", "p", nil, "Restrict to these providers (repeat or comma separate)")
	RootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
}
