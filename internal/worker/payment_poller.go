package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/domainmart/domainmart/internal/adapter/payments"
	"github.com/domainmart/domainmart/internal/domain/model"
)

// ErrRegistrationInProgress signals that another worker holds the
// registration lock for the order.
var ErrRegistrationInProgress = errors.New("registration already in progress")

// RegistrationFacade exposes the subset of application functionality required by the worker.
type RegistrationFacade interface {
	OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error)
	OrdersAwaitingRegistration(ctx context.Context, limit int) ([]model.Order, error)
	CheckPayment(ctx context.Context, order *model.Order) (*model.Payment, error)
	ConfirmPayment(ctx context.Context, orderID string, receivedUSD float64) error
	RunRegistration(ctx context.Context, orderID string) (model.RegistrationResult, error)
}

// PaymentPoller polls the payment gateway for pending orders and drives paid
// orders through registration concurrently.
type PaymentPoller struct {
	facade       RegistrationFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewPaymentPoller constructs the polling worker pool.
func NewPaymentPoller(facade RegistrationFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
		inflight:     make(map[string]struct{}),
	}
}

// Start launches background processing.
func (p *PaymentPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentPoller) fetchAndDispatch(ctx context.Context) {
	pending, err := p.facade.OrdersAwaitingPayment(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders awaiting payment failed", slog.String("error", err.Error()))
		return
	}
	confirmed, err := p.facade.OrdersAwaitingRegistration(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders awaiting registration failed", slog.String("error", err.Error()))
		return
	}

	for _, order := range append(pending, confirmed...) {
		if !p.claim(order.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			p.release(order.ID)
			return
		case p.jobs <- order:
		}
	}
}

// claim marks the order as queued so successive ticks do not dispatch it
// twice while a worker is still on it.
func (p *PaymentPoller) claim(orderID string) bool {
	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	if _, busy := p.inflight[orderID]; busy {
		return false
	}
	p.inflight[orderID] = struct{}{}
	return true
}

func (p *PaymentPoller) release(orderID string) {
	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	delete(p.inflight, orderID)
}

func (p *PaymentPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
			p.release(order.ID)
		}
	}
}

func (p *PaymentPoller) handleOrder(ctx context.Context, order model.Order) {
	if order.PaymentStatus == model.PaymentStatusPending {
		if !p.confirmPending(ctx, &order) {
			return
		}
	}

	result, err := p.facade.RunRegistration(ctx, order.ID)
	if err != nil {
		if errors.Is(err, ErrRegistrationInProgress) {
			return
		}
		p.logger.Error("registration run failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return
	}
	if !result.Success {
		p.logger.Warn("registration did not complete",
			slog.String("order", order.ID),
			slog.String("reason", string(result.Reason)),
			slog.String("detail", result.Detail))
	}
}

func (p *PaymentPoller) confirmPending(ctx context.Context, order *model.Order) bool {
	payment, err := p.facade.CheckPayment(ctx, order)
	if err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			return false
		}
		p.logger.Error("payment check failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return false
	}
	if payment.Status != model.TransactionStatusConfirmed {
		return false
	}

	if err := p.facade.ConfirmPayment(ctx, order.ID, payment.ReceivedUSD); err != nil {
		p.logger.Warn("payment confirmation rejected", slog.String("order", order.ID), slog.String("error", err.Error()))
		return false
	}
	return true
}
