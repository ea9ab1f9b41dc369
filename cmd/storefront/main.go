package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/storefront/internal/config"
	"github.com/davicafu/storefront/pkg/logger"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront REST backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", "config/config.env", "dotenv file to load before reading the environment")

	root.AddCommand(newServeCmd(), newSeedCmd())
	return root
}

// loadConfig lee la configuración e inicializa el logger global.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Env)
	return cfg, nil
}

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Logger().Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
