package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/config"
	"github.com/ashwinyue/next-blog/internal/database"
	"github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
)

var (
	configPath string

	// Global state
	cfg *config.Config
	zl  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Maintenance commands for the blog backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		zl = logger.New(cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zl != nil {
			_ = zl.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./configs/config.yaml"
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Configuration file path")

	rootCmd.AddCommand(migrateImagesCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRepositories 连接数据库并返回仓库集合
func openRepositories() (*repository.Repositories, func(), error) {
	db, err := database.New(cfg, zl)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRepositories(db.DB), func() { _ = db.Close() }, nil
}
