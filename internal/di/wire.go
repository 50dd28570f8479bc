//go:build wireinject
// +build wireinject

package di

import (
	"MoverScan/pkg/config"
	"MoverScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideEventPublisher,

		// Upstream providers
		ProvideAdapters,
		ProvideQuoteChains,
		ProvideGainers,
		ProvideCandleProviders,
		ProvideNewsFeeds,

		// Use cases
		ProvideMoversUseCase,
		ProvideNewsUseCase,
		ProvideCandlesUseCase,
		ProvideAnalysisUseCase,
		ProvideBacktestUseCase,
		ProvideSessionUseCase,

		// HTTP
		ProvideMarketHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
