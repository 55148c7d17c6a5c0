package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/adapter/dnsprovider"
	"github.com/domainmart/domainmart/internal/adapter/payments"
	"github.com/domainmart/domainmart/internal/adapter/registrar"
	"github.com/domainmart/domainmart/internal/config"
	"github.com/domainmart/domainmart/internal/domain/repository"
)

// Module provides the use case layer.
var Module = fx.Provide(
	newOrderUseCase,
	newWalletUseCase,
	newRegistrationUseCase,
)

type orderParams struct {
	fx.In

	Orders  repository.OrderRepository
	Gateway payments.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Gateway, p.Config.PaymentTolerancePct, p.Logger)
}

type walletParams struct {
	fx.In

	Wallets repository.WalletRepository
	Orders  repository.OrderRepository
	Logger  *slog.Logger
}

func newWalletUseCase(p walletParams) *WalletUseCase {
	return NewWalletUseCase(p.Wallets, p.Orders, p.Logger)
}

type registrationParams struct {
	fx.In

	Orders    repository.OrderRepository
	Domains   repository.DomainRepository
	Registrar registrar.Client
	DNS       dnsprovider.Client
	Config    *config.Config
	Logger    *slog.Logger
}

func newRegistrationUseCase(p registrationParams) *RegistrationUseCase {
	return NewRegistrationUseCase(
		p.Orders,
		p.Domains,
		p.Registrar,
		p.DNS,
		p.Config.RegistrarNameservers,
		p.Config.PreRegPropagation,
		p.Logger,
	)
}
