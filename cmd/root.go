package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/reqtrace/cmd/http"
	systemcmd "github.com/Alijeyrad/reqtrace/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = NewRootCommand()

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reqtrace",
		Short: "Request-scoped context propagation service.",
		Long: `reqtrace tags every request with a correlation identifier taken from, or
echoed to, a configurable header, and makes it available to logs, traces,
errors and downstream calls made while serving that request.`,
		SilenceUsage: true,
	}

	// Global config flag, available for all commands.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	cmd.AddCommand(systemcmd.NewSystemCommand())
	cmd.AddCommand(httpcmd.NewHTTPCommand())

	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
