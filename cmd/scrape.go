package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/logger"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the SHL product catalog into the cache file and the database",
	Run: func(_ *cobra.Command, _ []string) {
		scrape()
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringP("output", "o", "", "catalog cache file (overrides catalog.cache-file)")
	viper.BindPFlag("catalog.cache-file", scrapeCmd.Flags().Lookup("output"))
}

func scrape() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	scraper := newScraper(config.Catalog, zlog)

	zlog.Info("scraping the assessment catalog", zap.String("url", scraper.CatalogURL))
	assessments, err := scraper.FetchCatalog(ctx)
	if err != nil {
		zlog.Fatal("fetching catalog", zap.Error(err))
	}

	zlog.Info("catalog fetched", zap.Int("count", assessments.Len()))

	if config.Catalog.CacheFile != "" {
		if err := assessments.SaveFile(config.Catalog.CacheFile); err != nil {
			zlog.Fatal("writing catalog cache", zap.String("file", config.Catalog.CacheFile), zap.Error(err))
		}
		zlog.Info("catalog cache written", zap.String("file", config.Catalog.CacheFile))
	}

	st, err := openStore(ctx, config.Database, zlog)
	if err != nil {
		zlog.Fatal("opening the store", zap.Error(err))
	}
	if st == nil {
		return
	}
	defer st.Close()

	if err := st.SeedAssessments(ctx, assessments); err != nil {
		zlog.Fatal("seeding assessments into database", zap.Error(err))
	}
	zlog.Info("database seeded", zap.Int("count", assessments.Len()))
}
