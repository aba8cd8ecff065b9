// Package cli implements the tramites command-line interface using cobra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tramites/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tramites/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose    bool
	configPath string

	// cfgStore and cfg hold the loaded file and the effective
	// configuration (file, then environment, then command flags).
	cfgStore *file.ConfigStore
	cfg      file.Config
)

var rootCmd = &cobra.Command{
	Use:   "tramites",
	Short: "Scrape and explore Ecuador's public procedures catalog",
	Long: `tramites lists public institutions and their administrative procedures
(tramites) from the gob.ec API, exports them to CSV files, loads them into
a document store and summarises stored collections.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tramites/config.toml)")
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return err
	}
	cfgStore = store
	cfg = store.Config()
	cfg.ApplyEnv(os.Getenv)

	logger.Debug("Config: %s (exists: %v)", store.Path(), store.Exists())
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()

	return rootCmd.ExecuteContext(ctx)
}
