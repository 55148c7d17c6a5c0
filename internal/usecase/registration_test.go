package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/domainmart/domainmart/internal/adapter/dnsprovider"
	"github.com/domainmart/domainmart/internal/adapter/registrar"
	"github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/test"
)

var defaultNameservers = []string{"ns1.registrar.example", "ns2.registrar.example"}

func confirmedOrder(mode model.NameserverMode, domainName string) *model.Order {
	return &model.Order{
		ID:             "order-1",
		TelegramID:     42,
		DomainName:     domainName,
		NameserverMode: mode,
		Email:          "owner@example.com",
		PaymentStatus:  model.PaymentStatusConfirmed,
		TotalPriceUSD:  9.99,
	}
}

func newRegistrationFixture(order *model.Order) (*test.OrderRepositoryStub, *test.DomainRepositoryStub, *test.RegistrarClientStub, *test.DNSClientStub) {
	orders := &test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, string) (*model.Order, error) { return order, nil },
	}
	domains := &test.DomainRepositoryStub{
		GetByNameFn: func(context.Context, string, int64) (*model.RegisteredDomain, error) {
			return nil, errors.ErrNotFound
		},
	}
	return orders, domains, &test.RegistrarClientStub{}, &test.DNSClientStub{}
}

func newRegistrationUseCaseForTest(
	orders *test.OrderRepositoryStub,
	domains *test.DomainRepositoryStub,
	reg *test.RegistrarClientStub,
	dns *test.DNSClientStub,
) *RegistrationUseCase {
	return NewRegistrationUseCase(orders, domains, reg, dns, defaultNameservers, 0, discardLogger())
}

func TestRegistrationRun_CloudflareSuccess(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCloudflare, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	var saved *model.RegisteredDomain
	domains.SaveFn = func(_ context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error) {
		saved = domain
		return domain, nil
	}
	var completed bool
	orders.MarkCompletedFn = func(context.Context, string) error {
		completed = true
		return nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success {
		t.Fatalf("expected success, got %q: %s", result.Reason, result.Detail)
	}
	if !completed {
		t.Fatal("order was not marked completed")
	}
	if saved == nil || saved.CloudflareZoneID == nil || *saved.CloudflareZoneID != "zone-1" {
		t.Fatalf("saved record misses zone ID: %+v", saved)
	}
	if result.CloudflareZoneID != "zone-1" {
		t.Fatalf("expected zone-1 in result, got %q", result.CloudflareZoneID)
	}
	if len(result.Nameservers) != 2 {
		t.Fatalf("expected zone nameservers in result, got %v", result.Nameservers)
	}
}

func TestRegistrationRun_RegistrarModeUsesDefaultNameservers(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	dns.CreateOrGetZoneFn = func(context.Context, string) (*dnsprovider.Zone, error) {
		t.Fatal("registrar mode must not touch the DNS provider")
		return nil, nil
	}
	var requested []string
	reg.RegisterDomainFn = func(_ context.Context, req registrar.RegisterRequest) (string, error) {
		requested = req.Nameservers
		return "domain-1", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success {
		t.Fatalf("expected success, got %q: %s", result.Reason, result.Detail)
	}
	if len(requested) != 2 || requested[0] != defaultNameservers[0] {
		t.Fatalf("expected default nameservers, got %v", requested)
	}
}

func TestRegistrationRun_CustomModeSkipsZoneCreation(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCustom, "example.sbs")
	order.CustomNameservers = []string{"ns1.example.com", "ns2.example.com"}
	orders, domains, reg, dns := newRegistrationFixture(order)

	dns.CreateOrGetZoneFn = func(context.Context, string) (*dnsprovider.Zone, error) {
		t.Fatal("custom mode must not touch the DNS provider")
		return nil, nil
	}
	var saved *model.RegisteredDomain
	domains.SaveFn = func(_ context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error) {
		saved = domain
		return domain, nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success {
		t.Fatalf("expected success, got %q: %s", result.Reason, result.Detail)
	}
	if saved == nil || saved.CloudflareZoneID != nil {
		t.Fatalf("custom mode must persist a null zone ID, got %+v", saved)
	}
	if len(saved.Nameservers) != 2 || saved.Nameservers[0] != "ns1.example.com" || saved.Nameservers[1] != "ns2.example.com" {
		t.Fatalf("expected supplied nameservers to be persisted, got %v", saved.Nameservers)
	}
	if len(result.Nameservers) != 2 || result.Nameservers[0] != "ns1.example.com" {
		t.Fatalf("expected supplied nameservers in result, got %v", result.Nameservers)
	}
}

func TestRegistrationRun_CustomModeValidatesNameservers(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCustom, "example.sbs")
	order.CustomNameservers = []string{"only-one.example.com"}
	orders, domains, reg, dns := newRegistrationFixture(order)

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureOrderInvalid {
		t.Fatalf("expected ORDER_INVALID, got %+v", result)
	}
}

func TestRegistrationRun_UnpaidOrderRejected(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	order.PaymentStatus = model.PaymentStatusPending
	orders, domains, reg, dns := newRegistrationFixture(order)

	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		t.Fatal("unpaid orders must never reach the registrar")
		return "", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureOrderInvalid {
		t.Fatalf("expected ORDER_INVALID, got %+v", result)
	}
}

func TestRegistrationRun_BlockedTLD(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "shop.com.br")
	orders, domains, reg, dns := newRegistrationFixture(order)

	reg.CreateContactFn = func(context.Context, registrar.ContactRequest) (string, error) {
		t.Fatal("blocked extensions must fail before any registrar call")
		return "", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureTldNotAllowed {
		t.Fatalf("expected TLD_NOT_ALLOWED, got %+v", result)
	}
}

func TestRegistrationRun_ZoneFailure(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCloudflare, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	dns.CreateOrGetZoneFn = func(context.Context, string) (*dnsprovider.Zone, error) {
		return nil, context.DeadlineExceeded
	}
	reg.CreateContactFn = func(context.Context, registrar.ContactRequest) (string, error) {
		t.Fatal("zone failure must stop the pipeline before contact creation")
		return "", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureDNSZone {
		t.Fatalf("expected DNS_ZONE_FAILURE, got %+v", result)
	}
}

func TestRegistrationRun_ContactFailure(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	reg.CreateContactFn = func(context.Context, registrar.ContactRequest) (string, error) {
		return "", context.DeadlineExceeded
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureContact {
		t.Fatalf("expected CONTACT_FAILURE, got %+v", result)
	}
}

func TestRegistrationRun_PreRegistrationRecordWritten(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCloudflare, "beispiel.de")
	orders, domains, reg, dns := newRegistrationFixture(order)

	var recordsBeforeRegistration int
	dns.CreateRecordFn = func(_ context.Context, zoneID string, record dnsprovider.Record) error {
		if record.Type != "A" {
			t.Fatalf("expected A record, got %s", record.Type)
		}
		recordsBeforeRegistration++
		return nil
	}
	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		if recordsBeforeRegistration == 0 {
			t.Fatal("expected a propagated A record before registration")
		}
		return "domain-1", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success {
		t.Fatalf("expected success, got %q: %s", result.Reason, result.Detail)
	}
}

func TestRegistrationRun_DuplicateWithLocalRecordCompletes(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	existing := &model.RegisteredDomain{
		DomainName:        "example.sbs",
		TelegramID:        42,
		RegistrarDomainID: "domain-7",
		Nameservers:       defaultNameservers,
	}
	lookups := 0
	domains.GetByNameFn = func(context.Context, string, int64) (*model.RegisteredDomain, error) {
		lookups++
		// The record appears only after the registrar reports a duplicate,
		// mimicking a concurrent run having persisted it in between.
		if lookups == 1 {
			return nil, errors.ErrNotFound
		}
		return existing, nil
	}
	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		return "", registrar.ErrDuplicateDomain
	}
	var completed bool
	orders.MarkCompletedFn = func(context.Context, string) error {
		completed = true
		return nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success || !completed {
		t.Fatalf("expected recovery to success, got %+v (completed=%v)", result, completed)
	}
	if result.RegistrarDomainID != "domain-7" {
		t.Fatalf("expected existing registrar domain ID, got %q", result.RegistrarDomainID)
	}
}

func TestRegistrationRun_DuplicateRecoveredByRegistrarLookup(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		return "", registrar.ErrDuplicateDomain
	}
	reg.LookupDomainFn = func(context.Context, string, string) (string, error) {
		return "domain-55", nil
	}
	var saved *model.RegisteredDomain
	domains.SaveFn = func(_ context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error) {
		saved = domain
		return domain, nil
	}
	var completed bool
	orders.MarkCompletedFn = func(context.Context, string) error {
		completed = true
		return nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success || !completed {
		t.Fatalf("expected lookup recovery to success, got %+v (completed=%v)", result, completed)
	}
	if saved == nil || saved.RegistrarDomainID != "domain-55" {
		t.Fatalf("expected looked-up registrar domain ID to be persisted, got %+v", saved)
	}
	if result.RegistrarDomainID != "domain-55" {
		t.Fatalf("expected looked-up registrar domain ID in result, got %q", result.RegistrarDomainID)
	}
}

func TestRegistrationRun_DuplicateWithoutLocalRecordFails(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		return "", registrar.ErrDuplicateDomain
	}
	reg.LookupDomainFn = func(context.Context, string, string) (string, error) {
		return "", registrar.ErrDomainNotFound
	}
	domains.SaveFn = func(context.Context, *model.RegisteredDomain) (*model.RegisteredDomain, error) {
		t.Fatal("no record may be fabricated for an unreconciled duplicate")
		return nil, nil
	}
	orders.MarkCompletedFn = func(context.Context, string) error {
		t.Fatal("order must stay open for operator reconciliation")
		return nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailureUnreconciledDuplicate {
		t.Fatalf("expected UNRECONCILED_DUPLICATE, got %+v", result)
	}
}

func TestRegistrationRun_BaselineRecordFailureIsNonFatal(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCloudflare, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	dns.CreateRecordFn = func(context.Context, string, dnsprovider.Record) error {
		return context.DeadlineExceeded
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success {
		t.Fatalf("baseline record failure must not fail the run, got %+v", result)
	}
}

func TestRegistrationRun_PersistenceFailure(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	domains.SaveFn = func(context.Context, *model.RegisteredDomain) (*model.RegisteredDomain, error) {
		return nil, context.DeadlineExceeded
	}
	orders.MarkCompletedFn = func(context.Context, string) error {
		t.Fatal("order must not complete when the write failed")
		return nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if result.Success || result.Reason != model.FailurePersistence {
		t.Fatalf("expected PERSISTENCE_FAILURE, got %+v", result)
	}
}

func TestRegistrationRun_ExistingRecordShortCircuits(t *testing.T) {
	order := confirmedOrder(model.NameserverModeRegistrar, "example.sbs")
	orders, domains, reg, dns := newRegistrationFixture(order)

	domains.GetByNameFn = func(context.Context, string, int64) (*model.RegisteredDomain, error) {
		return &model.RegisteredDomain{
			DomainName:        "example.sbs",
			TelegramID:        42,
			RegistrarDomainID: "domain-9",
		}, nil
	}
	reg.RegisterDomainFn = func(context.Context, registrar.RegisterRequest) (string, error) {
		t.Fatal("an already-registered domain must not be submitted again")
		return "", nil
	}

	result := newRegistrationUseCaseForTest(orders, domains, reg, dns).Run(context.Background(), "order-1")

	if !result.Success || result.RegistrarDomainID != "domain-9" {
		t.Fatalf("expected short-circuit success, got %+v", result)
	}
}

func TestRegistrationRun_PreRegistrationWaitHonorsContext(t *testing.T) {
	order := confirmedOrder(model.NameserverModeCloudflare, "beispiel.de")
	orders, domains, reg, dns := newRegistrationFixture(order)

	uc := NewRegistrationUseCase(orders, domains, reg, dns, defaultNameservers, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan model.RegistrationResult, 1)
	go func() { done <- uc.Run(ctx, "order-1") }()

	select {
	case result := <-done:
		if result.Success {
			t.Fatalf("expected cancellation failure, got %+v", result)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not abort on context cancellation")
	}
}
