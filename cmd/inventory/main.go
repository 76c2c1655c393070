package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/adapter/handler"
	"github.com/rl1809/shoe-inventory/internal/config"
	"github.com/rl1809/shoe-inventory/internal/core/service"
	"github.com/rl1809/shoe-inventory/internal/logging"
)

var (
	// Global flags
	configPath string
	filePath   string
	backend    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Shoe inventory manager",
	Long: `Manages a shoe inventory kept in a comma-separated file (or MySQL,
SQLite or Redis when configured).

Run without arguments to start the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "inventory.yaml", "YAML config file (defaults apply when missing)")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "inventory file, overrides storage.file_path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file, mysql, sqlite or redis")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		c.Storage.FilePath = filePath
	}
	if backend != "" {
		c.Storage.Backend = backend
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// runMenu serves the interactive menu on stdin/stdout.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, closeRepo, err := openRepository(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := service.NewInventoryService(repo, logger)
	return handler.NewConsoleHandler(svc, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
}
