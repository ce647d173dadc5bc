package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	httpapp "prop_search/internal/app/httpapp"
	"prop_search/internal/config"
	"prop_search/internal/http/searchhttp"
	"prop_search/internal/lib/llm"
	"prop_search/internal/lib/metrics"
	"prop_search/internal/lib/photos"
	"prop_search/internal/lib/ratelimit"
	"prop_search/internal/repository/listing_repository"
	"prop_search/internal/repository/seed_repository"
	"prop_search/internal/services/descriptions"
	"prop_search/internal/services/geocode"
	"prop_search/internal/services/search"
)

// ListingCatalog — источник каталога объявлений. Реализуется
// Postgres-репозиторием и seed-репозиторием.
type ListingCatalog interface {
	search.ListingSource
	descriptions.ListingProvider
}

type App struct {
	HTTPServer *httpapp.App
	// AI-клиент и метрики (экспортируются для внешнего доступа)
	LLMClient llm.Client
	Metrics   *metrics.SearchMetrics
}

func New(log *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) (*App, error) {
	// Каталог: Postgres при заданном DATABASE_URL, иначе seed-файл.
	var catalog ListingCatalog
	if pool != nil {
		catalog = listing_repository.NewListingRepository(pool, log)
	} else {
		seedRepo, err := seed_repository.NewSeedRepository(cfg.SeedPath, log)
		if err != nil {
			return nil, err
		}
		catalog = seedRepo
		log.Info("catalog loaded from seed file", slog.String("path", cfg.SeedPath))
	}

	llmClient := llm.NewClient(cfg.LLM, log)

	photoResolver, err := photos.NewResolver(cfg.Photos, log)
	if err != nil {
		return nil, err
	}

	searchMetrics := metrics.NewSearchMetrics(log)

	log.Info("external services initialized",
		slog.Bool("llm_enabled", llmClient.IsEnabled()),
		slog.Bool("photos_enabled", photoResolver.IsEnabled()),
	)

	geocoder := geocode.New(log)
	searchService := search.New(log, catalog, searchMetrics)

	descriptionLimiter := ratelimit.New(cfg.RateLimit.DescriptionLimit, cfg.RateLimit.DescriptionWindow)
	descriptionService := descriptions.New(log, llmClient, catalog, descriptionLimiter, searchMetrics)

	server := searchhttp.NewServer(
		log,
		searchService,
		catalog,
		descriptionService,
		geocoder,
		photoResolver,
		searchMetrics,
		cfg.BaseURL,
	)

	router := searchhttp.NewRouter(server, cfg.Secret, cfg.DisableAuth)

	httpApp := httpapp.New(log, router, cfg.HTTP)

	return &App{
		HTTPServer: httpApp,
		LLMClient:  llmClient,
		Metrics:    searchMetrics,
	}, nil
}
