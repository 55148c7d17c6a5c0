package usecase

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/domainmart/domainmart/internal/adapter/dnsprovider"
	"github.com/domainmart/domainmart/internal/adapter/registrar"
	"github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/domain/repository"
	"github.com/domainmart/domainmart/internal/tldrules"
)

// preRegContent is the placeholder address written before registration for
// registries that validate an existing A record.
const preRegContent = "192.0.2.1"

const preRegTTL = 300

// RegistrationUseCase drives a paid order through the registration pipeline:
// nameserver acquisition, contact handle creation, registrar submission, DNS
// record provisioning, and the single durable write. A run either produces a
// persisted domain record and a completed order, or fails with a classified
// reason and no local record.
type RegistrationUseCase struct {
	orders               repository.OrderRepository
	domains              repository.DomainRepository
	registrarClient      registrar.Client
	dns                  dnsprovider.Client
	registrarNameservers []string
	preRegDelay          time.Duration
	logger               *slog.Logger
}

func NewRegistrationUseCase(
	orders repository.OrderRepository,
	domains repository.DomainRepository,
	registrarClient registrar.Client,
	dns dnsprovider.Client,
	registrarNameservers []string,
	preRegDelay time.Duration,
	logger *slog.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		orders:               orders,
		domains:              domains,
		registrarClient:      registrarClient,
		dns:                  dns,
		registrarNameservers: registrarNameservers,
		preRegDelay:          preRegDelay,
		logger:               logger,
	}
}

// Run executes the registration pipeline for the order. It is safe to call
// again after a crash: an already-persisted domain short-circuits to success.
func (u *RegistrationUseCase) Run(ctx context.Context, orderID string) model.RegistrationResult {
	var steps []model.AttemptStep

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return u.fail(orderID, "", model.FailureOrderInvalid, err.Error(), steps)
	}
	if order.PaymentStatus != model.PaymentStatusConfirmed && order.PaymentStatus != model.PaymentStatusCompleted {
		return u.fail(orderID, order.DomainName, model.FailureOrderInvalid,
			fmt.Sprintf("payment status %q does not allow registration", order.PaymentStatus), steps)
	}

	// A previous run may have persisted the domain and crashed before or
	// after completing the order. Re-running must not register twice.
	if existing, err := u.domains.GetByName(ctx, order.DomainName, order.TelegramID); err == nil {
		return u.complete(ctx, order, existing, steps)
	} else if !goerrors.Is(err, errors.ErrNotFound) {
		return u.fail(orderID, order.DomainName, model.FailurePersistence, err.Error(), steps)
	}

	root, tld, ok := SplitDomain(order.DomainName)
	if !ok {
		return u.fail(orderID, order.DomainName, model.FailureOrderInvalid, "malformed domain name", steps)
	}

	rec := tldrules.Recommend(tld, order.NameserverMode == model.NameserverModeCustom)
	if !rec.CanRegister {
		return u.fail(orderID, order.DomainName, model.FailureTldNotAllowed,
			strings.Join(rec.Warnings, "; "), steps)
	}

	var (
		nameservers []string
		zoneID      *string
	)
	switch order.NameserverMode {
	case model.NameserverModeCloudflare:
		zone, err := u.dns.CreateOrGetZone(ctx, order.DomainName)
		if err != nil {
			return u.fail(orderID, order.DomainName, model.FailureDNSZone, err.Error(), steps)
		}
		steps = append(steps, model.AttemptStep{Kind: model.StepCloudflareZone, ArtifactID: zone.ID})
		nameservers = zone.Nameservers
		zoneID = &zone.ID
	case model.NameserverModeCustom:
		if !ValidateNameserverSet(order.CustomNameservers) {
			return u.fail(orderID, order.DomainName, model.FailureOrderInvalid, "invalid custom nameserver set", steps)
		}
		nameservers = order.CustomNameservers
	default:
		nameservers = u.registrarNameservers
	}

	contactHandle, err := u.registrarClient.CreateContact(ctx, registrar.ContactRequest{
		TelegramID: order.TelegramID,
		Name:       fmt.Sprintf("tg-%d", order.TelegramID),
		Email:      order.Email,
	})
	if err != nil {
		return u.fail(orderID, order.DomainName, model.FailureContact, err.Error(), steps)
	}
	steps = append(steps, model.AttemptStep{Kind: model.StepContactHandle, ArtifactID: contactHandle})

	if rec.RequiresPreRegistration && zoneID != nil {
		if err := u.preRegister(ctx, *zoneID, order.DomainName); err != nil {
			return u.fail(orderID, order.DomainName, model.FailureDNSZone, err.Error(), steps)
		}
		steps = append(steps, model.AttemptStep{Kind: model.StepDNSRecord, ArtifactID: order.DomainName})
	}

	registrarDomainID, err := u.registrarClient.RegisterDomain(ctx, registrar.RegisterRequest{
		Root:           root,
		TLD:            tld,
		ContactHandle:  contactHandle,
		Nameservers:    nameservers,
		TechnicalEmail: order.Email,
		AdditionalData: rec.AdditionalFields,
	})
	if err != nil {
		if goerrors.Is(err, registrar.ErrDuplicateDomain) {
			return u.reconcileDuplicate(ctx, order, root, tld, contactHandle, nameservers, zoneID, steps)
		}
		return u.fail(orderID, order.DomainName, model.FailureRegistration, err.Error(), steps)
	}
	steps = append(steps, model.AttemptStep{Kind: model.StepDomain, ArtifactID: registrarDomainID})

	// Baseline records are best effort: the registration stands even when
	// the zone cannot be seeded right away.
	if zoneID != nil {
		if err := u.seedZone(ctx, *zoneID, order.DomainName); err != nil {
			u.logger.Warn("baseline record creation failed",
				slog.String("order_id", orderID),
				slog.String("domain", order.DomainName),
				slog.String("error", err.Error()))
		} else {
			steps = append(steps, model.AttemptStep{Kind: model.StepDNSRecord, ArtifactID: order.DomainName})
		}
	}

	saved, err := u.domains.Save(ctx, &model.RegisteredDomain{
		DomainName:        order.DomainName,
		TelegramID:        order.TelegramID,
		Status:            model.DomainStatusActive,
		NameserverMode:    order.NameserverMode,
		CloudflareZoneID:  zoneID,
		ContactHandle:     contactHandle,
		RegistrarDomainID: registrarDomainID,
		Nameservers:       nameservers,
		PricePaid:         order.TotalPriceUSD,
		ExpiryDate:        time.Now().AddDate(1, 0, 0),
	})
	if err != nil {
		if goerrors.Is(err, errors.ErrAlreadyExists) {
			if existing, readErr := u.domains.GetByName(ctx, order.DomainName, order.TelegramID); readErr == nil {
				return u.complete(ctx, order, existing, steps)
			}
		}
		return u.fail(orderID, order.DomainName, model.FailurePersistence, err.Error(), steps)
	}

	return u.complete(ctx, order, saved, steps)
}

// reconcileDuplicate handles the registrar reporting the domain as already
// registered. A matching local record means a previous run succeeded and the
// order can complete. Without one, the registration is recovered through a
// registrar lookup-by-name: the returned ID is persisted with this run's
// artifacts and the order completes. Only when the lookup cannot produce an
// ID either is the order left for an operator. No ID is ever fabricated.
func (u *RegistrationUseCase) reconcileDuplicate(ctx context.Context, order *model.Order, root, tld, contactHandle string, nameservers []string, zoneID *string, steps []model.AttemptStep) model.RegistrationResult {
	existing, err := u.domains.GetByName(ctx, order.DomainName, order.TelegramID)
	if err == nil {
		return u.complete(ctx, order, existing, steps)
	}
	if !goerrors.Is(err, errors.ErrNotFound) {
		return u.fail(order.ID, order.DomainName, model.FailurePersistence, err.Error(), steps)
	}

	registrarDomainID, lookupErr := u.registrarClient.LookupDomain(ctx, root, tld)
	if lookupErr != nil {
		return u.fail(order.ID, order.DomainName, model.FailureUnreconciledDuplicate,
			fmt.Sprintf("registrar reports the domain as registered but no local record exists and lookup failed: %s", lookupErr), steps)
	}
	steps = append(steps, model.AttemptStep{Kind: model.StepDomain, ArtifactID: registrarDomainID})

	saved, err := u.domains.Save(ctx, &model.RegisteredDomain{
		DomainName:        order.DomainName,
		TelegramID:        order.TelegramID,
		Status:            model.DomainStatusActive,
		NameserverMode:    order.NameserverMode,
		CloudflareZoneID:  zoneID,
		ContactHandle:     contactHandle,
		RegistrarDomainID: registrarDomainID,
		Nameservers:       nameservers,
		PricePaid:         order.TotalPriceUSD,
		ExpiryDate:        time.Now().AddDate(1, 0, 0),
	})
	if err != nil {
		if goerrors.Is(err, errors.ErrAlreadyExists) {
			if existing, readErr := u.domains.GetByName(ctx, order.DomainName, order.TelegramID); readErr == nil {
				return u.complete(ctx, order, existing, steps)
			}
		}
		return u.fail(order.ID, order.DomainName, model.FailurePersistence, err.Error(), steps)
	}
	return u.complete(ctx, order, saved, steps)
}

func (u *RegistrationUseCase) preRegister(ctx context.Context, zoneID, domainName string) error {
	if err := u.dns.CreateRecord(ctx, zoneID, dnsprovider.Record{
		Type:    "A",
		Name:    domainName,
		Content: preRegContent,
		TTL:     preRegTTL,
	}); err != nil {
		return err
	}

	// The registry probes DNS on submission; give the record time to
	// propagate before registering.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(u.preRegDelay):
		return nil
	}
}

func (u *RegistrationUseCase) seedZone(ctx context.Context, zoneID, domainName string) error {
	return u.dns.CreateRecord(ctx, zoneID, dnsprovider.Record{
		Type:    "A",
		Name:    domainName,
		Content: preRegContent,
		TTL:     preRegTTL,
	})
}

func (u *RegistrationUseCase) complete(ctx context.Context, order *model.Order, domain *model.RegisteredDomain, steps []model.AttemptStep) model.RegistrationResult {
	if err := u.orders.MarkCompleted(ctx, order.ID); err != nil {
		return u.fail(order.ID, order.DomainName, model.FailurePersistence, err.Error(), steps)
	}

	zoneID := ""
	if domain.CloudflareZoneID != nil {
		zoneID = *domain.CloudflareZoneID
	}
	u.logger.Info("registration completed",
		slog.String("order_id", order.ID),
		slog.String("domain", domain.DomainName),
		slog.String("registrar_domain_id", domain.RegistrarDomainID))
	return model.RegistrationResult{
		Success:           true,
		DomainName:        domain.DomainName,
		Nameservers:       domain.Nameservers,
		RegistrarDomainID: domain.RegistrarDomainID,
		CloudflareZoneID:  zoneID,
	}
}

// fail logs the classified failure along with the artifact ledger. External
// artifacts stay in place for operator reconciliation.
func (u *RegistrationUseCase) fail(orderID, domainName string, reason model.FailureReason, detail string, steps []model.AttemptStep) model.RegistrationResult {
	attrs := []any{
		slog.String("order_id", orderID),
		slog.String("reason", string(reason)),
		slog.String("detail", detail),
	}
	for _, step := range steps {
		attrs = append(attrs, slog.String("artifact_"+string(step.Kind), step.ArtifactID))
	}
	u.logger.Error("registration failed", attrs...)

	return model.RegistrationResult{
		Success:    false,
		DomainName: domainName,
		Reason:     reason,
		Detail:     detail,
	}
}
