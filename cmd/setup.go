package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/ai"
	"github.com/talentsift/shl-recommender/internal/ai/gemini"
	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/logger"
	"github.com/talentsift/shl-recommender/internal/recommend"
	"github.com/talentsift/shl-recommender/internal/secrets"
	"github.com/talentsift/shl-recommender/internal/store"
)

const defaultEmbeddingTTL = 24 * time.Hour

func newScraper(cfg *CatalogConfig, log *zap.Logger) *catalog.Scraper {
	scraper := catalog.NewScraper(log)
	if cfg != nil {
		if cfg.URL != "" {
			scraper.CatalogURL = cfg.URL
		}
		if cfg.UserAgent != "" {
			scraper.UserAgent = cfg.UserAgent
		}
	}
	return scraper
}

// openStore connects to MySQL and ensures the schema. A missing DSN is not an
// error; the caller gets a nil store and runs without persistence.
func openStore(ctx context.Context, cfg *DatabaseConfig, log *zap.Logger) (*store.Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.DSN) == "" {
		log.Info("no database configured, query history disabled")
		return nil, nil
	}

	st, err := store.New(cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := st.InitSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

// buildScorers assembles the scoring cascade in priority order. AI-backed
// scorers are skipped with a warning when no usable credentials exist; the
// keyword scorer is always present.
func buildScorers(ctx context.Context, cfg *AIConfig, redisCfg *RedisConfig, log *zap.Logger) []recommend.Scorer {
	var scorers []recommend.Scorer

	client, err := newGeminiClient(ctx, cfg)
	if err != nil {
		log.Warn("running without AI scorers", zap.Error(err))
	} else {
		aiLog := logger.WithModel(log, "gemini", client.Model())

		maxLogLen := 0
		if cfg.Gemini != nil {
			maxLogLen = cfg.Gemini.MaxLogLength
		}
		scorers = append(scorers, recommend.NewLLMScorer(client, maxLogLen, aiLog))

		var embedder ai.Embedder = client
		if rdb := newRedisClient(redisCfg); rdb != nil {
			log.Info("embedding cache enabled", zap.String("redis_addr", redisCfg.Addr))
			embedder = ai.NewCachedEmbedder(embedder, rdb, embeddingTTL(redisCfg), aiLog)
		}
		scorers = append(scorers, recommend.NewEmbeddingScorer(embedder, aiLog))
	}

	return append(scorers, recommend.NewKeywordScorer(log))
}

func newGeminiClient(ctx context.Context, cfg *AIConfig) (*gemini.Client, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, fmt.Errorf("ai.gemini is not configured")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Resolve("gemini api key", cfg.Gemini.APIKey, cfg.Gemini.APIKeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key or GEMINI_API_KEY)", err)
	}

	return gemini.NewClient(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.EmbeddingModel)
}

func newRedisClient(cfg *RedisConfig) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.Addr) == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func embeddingTTL(cfg *RedisConfig) time.Duration {
	if cfg == nil || cfg.EmbeddingTTL == "" {
		return defaultEmbeddingTTL
	}
	ttl, err := time.ParseDuration(cfg.EmbeddingTTL)
	if err != nil || ttl <= 0 {
		return defaultEmbeddingTTL
	}
	return ttl
}

// loadCandidates resolves the working catalog: the database first, then the
// JSON cache file, then a live scrape. A fresh scrape is written back to both.
func loadCandidates(ctx context.Context, cfg *CatalogConfig, st *store.Store, scraper *catalog.Scraper, log *zap.Logger) (*catalog.Assessments, error) {
	if st != nil {
		assessments, err := st.ListAssessments(ctx)
		if err != nil {
			return nil, err
		}
		if assessments.Len() > 0 {
			log.Info("catalog loaded from database", zap.Int("count", assessments.Len()))
			return assessments, nil
		}
	}

	if cfg.CacheFile != "" {
		assessments, err := catalog.LoadFile(cfg.CacheFile)
		if err == nil && assessments.Len() > 0 {
			log.Info("catalog loaded from cache file",
				zap.String("file", cfg.CacheFile),
				zap.Int("count", assessments.Len()),
			)
			seedStore(ctx, st, assessments, log)
			return assessments, nil
		}
	}

	log.Info("scraping the assessment catalog", zap.String("url", scraper.CatalogURL))
	assessments, err := scraper.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	if cfg.CacheFile != "" {
		if err := assessments.SaveFile(cfg.CacheFile); err != nil {
			log.Warn("writing catalog cache failed", zap.String("file", cfg.CacheFile), zap.Error(err))
		}
	}
	seedStore(ctx, st, assessments, log)

	return assessments, nil
}

func seedStore(ctx context.Context, st *store.Store, assessments *catalog.Assessments, log *zap.Logger) {
	if st == nil {
		return
	}
	if err := st.SeedAssessments(ctx, assessments); err != nil {
		log.Warn("seeding assessments into database failed", zap.Error(err))
	}
}
