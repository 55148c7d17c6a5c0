package di

import (
	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/adapter/dnsprovider"
	"github.com/domainmart/domainmart/internal/adapter/events"
	"github.com/domainmart/domainmart/internal/adapter/payments"
	"github.com/domainmart/domainmart/internal/adapter/registrar"
	"github.com/domainmart/domainmart/internal/app"
	"github.com/domainmart/domainmart/internal/config"
	"github.com/domainmart/domainmart/internal/locker"
	"github.com/domainmart/domainmart/internal/logger"
	"github.com/domainmart/domainmart/internal/pkg/auth"
	"github.com/domainmart/domainmart/internal/server/http/router"
	"github.com/domainmart/domainmart/internal/storage/postgres"
	"github.com/domainmart/domainmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		registrar.Module,
		dnsprovider.Module,
		payments.Module,
		events.Module,
		locker.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
