package di

import (
	"go.uber.org/fx"

	"github.com/avoronov/ordermart/internal/adapter/notify"
	"github.com/avoronov/ordermart/internal/adapter/rates"
	"github.com/avoronov/ordermart/internal/app"
	"github.com/avoronov/ordermart/internal/config"
	"github.com/avoronov/ordermart/internal/logger"
	"github.com/avoronov/ordermart/internal/server/http/router"
	"github.com/avoronov/ordermart/internal/storage/postgres"
	"github.com/avoronov/ordermart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		rates.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(client rates.Client) usecase.RateProvider { return client }),
		fx.Provide(func(log *notify.AppendLog) usecase.NotificationSink { return log }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
