package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/avoronov/ordermart/internal/config"
	"github.com/avoronov/ordermart/internal/server/http/handlers"
	"github.com/avoronov/ordermart/internal/worker"
)

// Job identifiers of the two recurring passes, registered once at startup.
const (
	JobPriorityRefresh = "priority-refresh"
	JobOrderProcessing = "order-processing"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderFacade,
		func(f *OrderFacade) handlers.OrderFacade { return f },
		newHTTPServer,
		newScheduler,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type schedulerParams struct {
	fx.In

	Facade *OrderFacade
	Config *config.Config
	Logger *slog.Logger
}

func newScheduler(p schedulerParams) *worker.Scheduler {
	scheduler := worker.NewScheduler(p.Logger)
	scheduler.Register(&worker.Job{
		Name:     JobPriorityRefresh,
		Interval: p.Config.PriorityRefreshInterval,
		Run:      p.Facade.RefreshPriorities,
	})
	scheduler.Register(&worker.Job{
		Name:     JobOrderProcessing,
		Interval: p.Config.ProcessInterval,
		Run:      p.Facade.ProcessOrders,
	})
	return scheduler
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Scheduler  *worker.Scheduler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting ordermart", slog.String("addr", p.Server.Addr))
			p.Scheduler.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Scheduler.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("ordermart stopped")
			return nil
		},
	})
}
