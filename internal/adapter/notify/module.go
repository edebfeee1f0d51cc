package notify

import (
	"context"

	"go.uber.org/fx"

	"github.com/avoronov/ordermart/internal/config"
)

// Module wires the completed-order notification log.
var Module = fx.Options(
	fx.Provide(newAppendLog),
	fx.Invoke(registerLifecycle),
)

func newAppendLog(cfg *config.Config) (*AppendLog, error) {
	return NewAppendLog(cfg.NotifyLogPath)
}

func registerLifecycle(lc fx.Lifecycle, log *AppendLog) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return log.Close()
		},
	})
}
