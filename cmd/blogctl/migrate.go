package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/service/file"
	"github.com/ashwinyue/next-blog/internal/service/migration"
)

var migrateBatchSize int

var migrateImagesCmd = &cobra.Command{
	Use:   "migrate-images",
	Short: "Rewrite legacy PostImage tags in every stored post",
	Long: `Scans every post body, rewrites <PostImage .../> tags whose src is on the trusted
CDN prefix into <Image .../> tags and prints the run manifest as JSON.
Posts that fail to save are listed in the manifest; the command still exits 0.`,
	Args: cobra.NoArgs,
	RunE: runMigrateImages,
}

func init() {
	migrateImagesCmd.Flags().IntVar(&migrateBatchSize, "batch-size", 100, "Posts loaded per batch")
}

func runMigrateImages(cmd *cobra.Command, args []string) error {
	repos, closeDB, err := openRepositories()
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := cmd.Context()
	opts := []migration.Option{migration.WithBatchSize(migrateBatchSize)}
	storage, err := file.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		zl.Warn("report storage unavailable, manifest will not be archived", zap.Error(err))
	} else {
		opts = append(opts, migration.WithStorage(storage))
	}

	rewriter := migration.NewImageRewriter(cfg.Content.ImageCDNPrefix, cfg.Content.ImageWidth, cfg.Content.ImageHeight)
	svc := migration.NewService(repos, rewriter, zl.Named("migration"), opts...)

	manifest, err := svc.RewritePostImages(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
