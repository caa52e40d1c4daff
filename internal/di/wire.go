//go:build wireinject
// +build wireinject

package di

import (
	"github.com/mmkaya-ui/borsa2/pkg/config"
	"github.com/mmkaya-ui/borsa2/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideRand,
		ProvideMetrics,

		// Market data
		ProvideSnapshotProvider,
		ProvideFeedRunner,
		ProvideStore,

		// Scoring engines
		ProvideScorer,
		ProvideVigilAnalyzer,
		ProvideDetective,
		ProvideSocialProvider,

		// Infrastructure
		ProvideClickHouseClient,
		ProvideHistoryRecorder,
		ProvideAlertPublisher,
		ProvideReportCache,
		ProvideTTLCache,

		// Use cases
		ProvideMarketUseCase,
		ProvideVigilUseCase,
		ProvideDetectiveUseCase,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
