package auth

import (
	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/config"
)

// Module wires webhook and operator authentication helpers.
var Module = fx.Provide(
	func(cfg *config.Config) *WebhookVerifier { return NewWebhookVerifier(cfg.WebhookSecret) },
	func(cfg *config.Config) *OperatorAuth { return NewOperatorAuth(cfg.OperatorTokenHash) },
)
