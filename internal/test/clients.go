package test

import (
	"context"
	"time"

	"github.com/domainmart/domainmart/internal/adapter/dnsprovider"
	"github.com/domainmart/domainmart/internal/adapter/registrar"
	"github.com/domainmart/domainmart/internal/domain/model"
)

// RegistrarClientStub implements registrar.Client with overridable
// functions per method.
type RegistrarClientStub struct {
	CreateContactFn  func(ctx context.Context, req registrar.ContactRequest) (string, error)
	RegisterDomainFn func(ctx context.Context, req registrar.RegisterRequest) (string, error)
	LookupDomainFn   func(ctx context.Context, root, tld string) (string, error)
}

func (s *RegistrarClientStub) CreateContact(ctx context.Context, req registrar.ContactRequest) (string, error) {
	if s.CreateContactFn != nil {
		return s.CreateContactFn(ctx, req)
	}
	return "contact-1", nil
}

func (s *RegistrarClientStub) RegisterDomain(ctx context.Context, req registrar.RegisterRequest) (string, error) {
	if s.RegisterDomainFn != nil {
		return s.RegisterDomainFn(ctx, req)
	}
	return "domain-1", nil
}

func (s *RegistrarClientStub) LookupDomain(ctx context.Context, root, tld string) (string, error) {
	if s.LookupDomainFn != nil {
		return s.LookupDomainFn(ctx, root, tld)
	}
	return "domain-1", nil
}

// DNSClientStub implements dnsprovider.Client with overridable functions
// per method.
type DNSClientStub struct {
	CreateOrGetZoneFn func(ctx context.Context, domainName string) (*dnsprovider.Zone, error)
	CreateRecordFn    func(ctx context.Context, zoneID string, record dnsprovider.Record) error
	NameserversFn     func(ctx context.Context, zoneID string) ([]string, error)
}

func (s *DNSClientStub) CreateOrGetZone(ctx context.Context, domainName string) (*dnsprovider.Zone, error) {
	if s.CreateOrGetZoneFn != nil {
		return s.CreateOrGetZoneFn(ctx, domainName)
	}
	return &dnsprovider.Zone{ID: "zone-1", Nameservers: []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"}}, nil
}

func (s *DNSClientStub) CreateRecord(ctx context.Context, zoneID string, record dnsprovider.Record) error {
	if s.CreateRecordFn != nil {
		return s.CreateRecordFn(ctx, zoneID, record)
	}
	return nil
}

func (s *DNSClientStub) Nameservers(ctx context.Context, zoneID string) ([]string, error) {
	if s.NameserversFn != nil {
		return s.NameserversFn(ctx, zoneID)
	}
	return []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"}, nil
}

// PaymentClientStub implements payments.Client with overridable functions
// per method.
type PaymentClientStub struct {
	CreatePaymentFn    func(ctx context.Context, orderID string, amountUSD float64, coin string) (*model.Payment, error)
	CheckTransactionFn func(ctx context.Context, reference string) (*model.Payment, error)
}

func (s *PaymentClientStub) CreatePayment(ctx context.Context, orderID string, amountUSD float64, coin string) (*model.Payment, error) {
	if s.CreatePaymentFn != nil {
		return s.CreatePaymentFn(ctx, orderID, amountUSD, coin)
	}
	return &model.Payment{OrderID: orderID, Reference: "ref-1", ExpectedUSD: amountUSD, Status: model.TransactionStatusPending}, nil
}

func (s *PaymentClientStub) CheckTransaction(ctx context.Context, reference string) (*model.Payment, error) {
	if s.CheckTransactionFn != nil {
		return s.CheckTransactionFn(ctx, reference)
	}
	return &model.Payment{Reference: reference, Status: model.TransactionStatusConfirmed}, nil
}

// LockerStub implements locker.Locker with overridable functions.
type LockerStub struct {
	AcquireFn func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseFn func(ctx context.Context, key string) error
}

func (s *LockerStub) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if s.AcquireFn != nil {
		return s.AcquireFn(ctx, key, ttl)
	}
	return true, nil
}

func (s *LockerStub) Release(ctx context.Context, key string) error {
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, key)
	}
	return nil
}

// PublisherStub implements events.Publisher with an overridable function.
type PublisherStub struct {
	PublishRegistrationResultFn func(ctx context.Context, orderID string, result model.RegistrationResult) error
}

func (s *PublisherStub) PublishRegistrationResult(ctx context.Context, orderID string, result model.RegistrationResult) error {
	if s.PublishRegistrationResultFn != nil {
		return s.PublishRegistrationResultFn(ctx, orderID, result)
	}
	return nil
}
