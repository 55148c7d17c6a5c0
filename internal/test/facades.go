package test

import (
	"context"
	"sync"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// Confirmation records one payment confirmation seen by the stub.
type Confirmation struct {
	OrderID     string
	ReceivedUSD float64
}

// WorkerFacadeStub implements worker.RegistrationFacade for tests. Batches
// are consumed one per poll tick; processed work is recorded under the
// embedded mutex.
type WorkerFacadeStub struct {
	sync.Mutex

	PendingBatches   [][]model.Order
	ConfirmedBatches [][]model.Order

	CheckFn func(ctx context.Context, order *model.Order) (*model.Payment, error)
	RunFn   func(ctx context.Context, orderID string) (model.RegistrationResult, error)

	Confirmations []Confirmation
	Runs          []string
}

func (s *WorkerFacadeStub) OrdersAwaitingPayment(_ context.Context, _ int) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.PendingBatches) == 0 {
		return nil, nil
	}
	batch := s.PendingBatches[0]
	s.PendingBatches = s.PendingBatches[1:]
	return batch, nil
}

func (s *WorkerFacadeStub) OrdersAwaitingRegistration(_ context.Context, _ int) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.ConfirmedBatches) == 0 {
		return nil, nil
	}
	batch := s.ConfirmedBatches[0]
	s.ConfirmedBatches = s.ConfirmedBatches[1:]
	return batch, nil
}

func (s *WorkerFacadeStub) CheckPayment(ctx context.Context, order *model.Order) (*model.Payment, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, order)
	}
	return &model.Payment{
		OrderID:     order.ID,
		ReceivedUSD: order.TotalPriceUSD,
		Status:      model.TransactionStatusConfirmed,
	}, nil
}

func (s *WorkerFacadeStub) ConfirmPayment(_ context.Context, orderID string, receivedUSD float64) error {
	s.Lock()
	defer s.Unlock()
	s.Confirmations = append(s.Confirmations, Confirmation{OrderID: orderID, ReceivedUSD: receivedUSD})
	return nil
}

func (s *WorkerFacadeStub) RunRegistration(ctx context.Context, orderID string) (model.RegistrationResult, error) {
	if s.RunFn != nil {
		return s.RunFn(ctx, orderID)
	}
	s.Lock()
	defer s.Unlock()
	s.Runs = append(s.Runs, orderID)
	return model.RegistrationResult{Success: true}, nil
}
