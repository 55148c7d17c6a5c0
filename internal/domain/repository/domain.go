package repository

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// DomainRepository describes persistence operations with registered domains.
type DomainRepository interface {
	// GetByName fetches the domain registered by the given owner.
	GetByName(ctx context.Context, domainName string, telegramID int64) (*model.RegisteredDomain, error)
	// Save writes the domain record exactly once. The write is refused when a
	// cloudflare-mode record lacks a zone ID, and verified after commit
	// preparation: the stored zone ID must match the requested one.
	Save(ctx context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error)
	ListByOwner(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error)
}
