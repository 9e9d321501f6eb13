package main

import (
	"os"
	"webook-smoke/internal/control"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Run the local users service the smoke run can target",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(_ *cobra.Command, _ []string) {
			if configPath != "" {
				os.Setenv("CONFIG_PATH", configPath)
			}

			control.Components.Start()
			defer control.Components.Stop()

			control.Components.Wait()
			zlog.Info().Msg("shutting down")
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file (overrides CONFIG_PATH)")

	if err := cmd.Execute(); err != nil {
		zlog.Fatal().Err(err).Msg("server failed")
	}
}
