package main

import (
	"os"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/database"
	"webook-smoke/internal/logger"
	"webook-smoke/internal/server"
	"webook-smoke/internal/smoke"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		baseURL    string
		email      string
		password   string
		withServer bool
	)

	cmd := &cobra.Command{
		Use:           "smoke",
		Short:         "Sign up, log in and fetch the profile, printing every response",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				os.Setenv("CONFIG_PATH", configPath)
			}

			// load config
			configs.LoadConfig()

			// init logger
			logger.Init(configs.GetLogConfig())

			cfg := configs.GetSmokeConfig()
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("email") {
				cfg.Email = email
			}
			if flags.Changed("password") {
				cfg.Password = password
				cfg.ConfirmPassword = password
			}

			if withServer {
				accounts := database.NewAccounts(database.NewInmemoryUsers(), configs.GetDatabaseConfig())
				server.Server.Init(configs.GetServerConfig(), accounts)
				server.Server.Start()
				defer server.Server.Stop()

				cfg.BaseURL = "http://" + server.Server.Addr()
			}

			zlog.Info().Str("base_url", cfg.BaseURL).Str("email", cfg.Email).Msg("starting smoke run")

			_, err := smoke.Execute(cmd.Context(), cfg, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file (overrides CONFIG_PATH)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "users service base url")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password, also used as the confirmation")
	cmd.Flags().BoolVar(&withServer, "with-server", false, "start the in-process users service and target it")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		zlog.Fatal().Err(err).Msg("smoke run failed")
	}
}
