package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/logger"
	"github.com/talentsift/shl-recommender/internal/recommend"
	"github.com/talentsift/shl-recommender/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (overrides server.addr)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the shl-recommender", zap.String("version", version))

	st, err := openStore(ctx, config.Database, zlog)
	if err != nil {
		zlog.Fatal("opening the store", zap.Error(err))
	}
	if st != nil {
		defer st.Close()
	}

	scraper := newScraper(config.Catalog, zlog)

	candidates, err := loadCandidates(ctx, config.Catalog, st, scraper, zlog)
	if err != nil {
		zlog.Fatal("loading the assessment catalog", zap.Error(err))
	}

	scorers := buildScorers(ctx, config.AI, config.Redis, zlog)

	var queryStore recommend.QueryStore
	var queryLog server.QueryLog
	if st != nil {
		queryStore = st
		queryLog = st
	}

	engine := recommend.NewEngine(scorers, scraper, queryStore, zlog)

	srv := server.New(engine, candidates, queryLog, zlog)
	if err := srv.Run(ctx, config.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("http server failed", zap.Error(err))
	}
}
