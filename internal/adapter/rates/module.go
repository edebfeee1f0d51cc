package rates

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/avoronov/ordermart/internal/config"
)

// Module exposes the rate source client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RatesAddress, p.Config.RatesAPIKey, p.Config.RatesFetchTimeout, p.Logger)
}
