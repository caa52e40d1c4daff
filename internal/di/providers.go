package di

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/analysis"
	"github.com/mmkaya-ui/borsa2/internal/detective"
	"github.com/mmkaya-ui/borsa2/internal/domain/service"
	"github.com/mmkaya-ui/borsa2/internal/handler/api"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	internalrepo "github.com/mmkaya-ui/borsa2/internal/repository"
	svccache "github.com/mmkaya-ui/borsa2/internal/service/cache"
	"github.com/mmkaya-ui/borsa2/internal/service/feed"
	"github.com/mmkaya-ui/borsa2/internal/service/social"
	"github.com/mmkaya-ui/borsa2/internal/usecase"
	"github.com/mmkaya-ui/borsa2/internal/vigil"
	pkgcache "github.com/mmkaya-ui/borsa2/pkg/cache"
	pkgch "github.com/mmkaya-ui/borsa2/pkg/clickhouse"
	"github.com/mmkaya-ui/borsa2/pkg/config"
	xhttp "github.com/mmkaya-ui/borsa2/pkg/http"
	pkgkafka "github.com/mmkaya-ui/borsa2/pkg/kafka"
	applogger "github.com/mmkaya-ui/borsa2/pkg/logger"
	"github.com/mmkaya-ui/borsa2/pkg/metrics"
	"github.com/mmkaya-ui/borsa2/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Log.Console {
		format = "console"
	}
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: format,
		Output: "stdout",
	})
}

// ProvideRand seeds the shared randomness source.
func ProvideRand() service.RandSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ProvideSnapshotProvider selects the mock or live market feed.
func ProvideSnapshotProvider(cfg *config.Config, rnd service.RandSource, log *applogger.Logger) service.SnapshotProvider {
	if cfg.Feed.Mode == "ws" {
		return feed.NewWSProvider(
			cfg.Feed.APIKey,
			cfg.Feed.WebSocketURL,
			cfg.Feed.Symbols,
			cfg.Feed.ReconnectDelay,
			cfg.Feed.PingInterval,
			log,
		)
	}
	return feed.NewMockProvider(rnd)
}

// ProvideFeedRunner exposes the live feed's background loop to the app.
// Mock mode has no background loop, so the runner is nil.
func ProvideFeedRunner(provider service.SnapshotProvider) server.Runner {
	if ws, ok := provider.(*feed.WSProvider); ok {
		return ws
	}
	return nil
}

// ProvideStore creates the in-memory market store.
func ProvideStore(provider service.SnapshotProvider, cfg *config.Config, log *applogger.Logger) *marketstore.Store {
	return marketstore.New(provider, cfg.Market.RefreshInterval, log)
}

// ProvideScorer creates the risk scorer with standard thresholds.
func ProvideScorer() *analysis.Scorer {
	return analysis.NewScorer(analysis.DefaultScorerParams())
}

// ProvideVigilAnalyzer creates the global market analyzer, with proxy
// tickers taken from config when set.
func ProvideVigilAnalyzer(cfg *config.Config, rnd service.RandSource) *vigil.Analyzer {
	p := vigil.DefaultParams()
	if v := cfg.Vigil.CountryETF; v != "" {
		p.CountryETF = v
	}
	if v := cfg.Vigil.BroadIndex; v != "" {
		p.BroadIndex = v
	}
	if v := cfg.Vigil.DollarIndex; v != "" {
		p.DollarIndex = v
	}
	if v := cfg.Vigil.VolatilityIndex; v != "" {
		p.VolatilityIndex = v
	}
	if v := cfg.Vigil.RiskAppetite; v != "" {
		p.RiskAppetite = v
	}
	if v := cfg.Vigil.SafeHaven; v != "" {
		p.SafeHaven = v
	}
	return vigil.NewAnalyzer(p, rnd)
}

// ProvideDetective creates the forensic scorer with standard thresholds.
func ProvideDetective() *detective.Detective {
	return detective.New(detective.DefaultParams())
}

// ProvideSocialProvider creates the sentiment signal source.
func ProvideSocialProvider(rnd service.RandSource) service.SocialSignalProvider {
	return social.NewMockProvider(rnd)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// history sink is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, false),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideHistoryRecorder wraps the ClickHouse client, or discards when nil.
func ProvideHistoryRecorder(client *pkgch.Client) service.HistoryRecorder {
	if client == nil {
		return internalrepo.NopHistory{}
	}
	return internalrepo.NewClickHouseHistory(client)
}

// ProvideAlertPublisher creates the Kafka alert publisher, or a no-op when
// the bus is disabled.
func ProvideAlertPublisher(cfg *config.Config) (service.AlertPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopAlertPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertsTopic), nil
}

// ProvideReportCache creates the vigil report cache: layered memory+Redis
// when Redis is enabled, otherwise memory only.
func ProvideReportCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideTTLCache creates the short-lived sweep cache.
func ProvideTTLCache() *svccache.TTLCache {
	return svccache.NewTTLCache()
}

// ProvideMarketUseCase wires the universe scoring use case.
func ProvideMarketUseCase(
	store *marketstore.Store,
	scorer *analysis.Scorer,
	publisher service.AlertPublisher,
	recorder service.HistoryRecorder,
	rec *metrics.Recorder,
	log *applogger.Logger,
) *usecase.MarketAnalysisUseCase {
	return usecase.NewMarketAnalysisUseCase(store, scorer, publisher, recorder, rec, log)
}

// ProvideVigilUseCase wires the global market report use case.
func ProvideVigilUseCase(
	store *marketstore.Store,
	analyzer *vigil.Analyzer,
	socialProvider service.SocialSignalProvider,
	publisher service.AlertPublisher,
	recorder service.HistoryRecorder,
	reportCache pkgcache.Service,
	cfg *config.Config,
	rec *metrics.Recorder,
	log *applogger.Logger,
) *usecase.VigilReportUseCase {
	ttl := cfg.Vigil.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	refSymbol := cfg.Vigil.CountryETF
	if refSymbol == "" {
		refSymbol = vigil.DefaultParams().CountryETF
	}
	return usecase.NewVigilReportUseCase(store, analyzer, socialProvider, publisher, recorder, reportCache, ttl, refSymbol, rec, log)
}

// ProvideDetectiveUseCase wires the forensic sweep use case.
func ProvideDetectiveUseCase(
	store *marketstore.Store,
	det *detective.Detective,
	cache *svccache.TTLCache,
	rec *metrics.Recorder,
) *usecase.DetectiveScanUseCase {
	return usecase.NewDetectiveScanUseCase(store, det, cache, rec)
}

// ProvideHandler builds the HTTP handler.
func ProvideHandler(
	log *applogger.Logger,
	market *usecase.MarketAnalysisUseCase,
	vigilUC *usecase.VigilReportUseCase,
	det *usecase.DetectiveScanUseCase,
) xhttp.Handler {
	return api.NewMarketEchoHandler(log, market, vigilUC, det)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	store *marketstore.Store,
	runner server.Runner,
	handler xhttp.Handler,
	publisher service.AlertPublisher,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, store, runner, handler, publisher, chClient)
}
