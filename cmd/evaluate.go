package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/evaluate"
	"github.com/talentsift/shl-recommender/internal/logger"
	"github.com/talentsift/shl-recommender/internal/recommend"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the engine against a labeled benchmark (Mean Recall@K, MAP@K)",
	Run: func(cmd *cobra.Command, _ []string) {
		runEvaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().IntP("k", "k", 3, "cutoff K for the ranking metrics")
	evaluateCmd.Flags().StringP("benchmark", "b", "", "JSON file with benchmark queries (default: built-in set)")
	evaluateCmd.Flags().StringP("output", "o", "", "write the report JSON to this file")
}

func runEvaluate(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	k, _ := cmd.Flags().GetInt("k")
	benchmarkFile, _ := cmd.Flags().GetString("benchmark")
	output, _ := cmd.Flags().GetString("output")

	queries, err := evaluate.LoadBenchmark(benchmarkFile)
	if err != nil {
		zlog.Fatal("loading benchmark", zap.Error(err))
	}

	scraper := newScraper(config.Catalog, zlog)

	candidates, err := loadCandidates(ctx, config.Catalog, nil, scraper, zlog)
	if err != nil {
		zlog.Fatal("loading the assessment catalog", zap.Error(err))
	}

	engine := recommend.NewEngine(buildScorers(ctx, config.AI, config.Redis, zlog), scraper, nil, zlog)

	report := evaluate.Run(ctx, engine, candidates.Items, queries, k, zlog)

	zlog.Info("benchmark complete",
		zap.Int("queries", len(report.PerQuery)),
		zap.Int("k", report.K),
		zap.Float64("mean_recall", report.MeanRecall),
		zap.Float64("map", report.MAP),
	)

	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(pretty))

	if output != "" {
		if err := os.WriteFile(output, pretty, 0o644); err != nil {
			zlog.Fatal("writing report", zap.String("file", output), zap.Error(err))
		}
		zlog.Info("report written", zap.String("file", output))
	}
}
