package dnsprovider

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/config"
)

// Module exposes the DNS provider client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.DNSAPIURL, p.Config.DNSAPIToken, p.Logger)
}
