package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/reqtrace/config"
)

func NewCheckConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print the effective request id settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration is valid.")
			fmt.Fprintf(out, "request id header: %s\n", cfg.RequestID.Header)
			fmt.Fprintf(out, "http port: %d\n", cfg.Server.Port)
			if cfg.Server.AdminPort != 0 {
				fmt.Fprintf(out, "admin port: %d\n", cfg.Server.AdminPort)
			}
			return nil
		},
	}

	return cmd
}
