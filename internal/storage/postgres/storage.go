package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/domain/repository"
)

// pgxPool abstracts the subset of pgxpool.Pool used by Storage, so tests can
// substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type domainRepository struct {
	storage *Storage
}

type walletRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Domains() repository.DomainRepository {
	return &domainRepository{storage: s}
}

func (s *Storage) Wallets() repository.WalletRepository {
	return &walletRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            telegram_id BIGINT NOT NULL,
            domain_name TEXT NOT NULL,
            nameserver_mode TEXT NOT NULL,
            custom_nameservers TEXT[],
            email TEXT NOT NULL DEFAULT '',
            payment_status TEXT NOT NULL DEFAULT 'pending',
            payment_reference TEXT NOT NULL DEFAULT '',
            total_price_usd DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS registered_domains (
            id SERIAL PRIMARY KEY,
            domain_name TEXT NOT NULL,
            telegram_id BIGINT NOT NULL,
            status TEXT NOT NULL DEFAULT 'active',
            nameserver_mode TEXT NOT NULL,
            cloudflare_zone_id TEXT,
            contact_handle TEXT NOT NULL DEFAULT '',
            registrar_domain_id TEXT NOT NULL DEFAULT '',
            nameservers TEXT[],
            price_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            expiry_date TIMESTAMPTZ NOT NULL,
            UNIQUE (domain_name, telegram_id)
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            telegram_id BIGINT PRIMARY KEY,
            balance_usd DOUBLE PRECISION NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_entries (
            id SERIAL PRIMARY KEY,
            telegram_id BIGINT NOT NULL,
            order_id TEXT NOT NULL DEFAULT '',
            amount_usd DOUBLE PRECISION NOT NULL,
            kind TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(payment_status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_domains_owner ON registered_domains(telegram_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, telegram_id, domain_name, nameserver_mode, custom_nameservers,
                      email, payment_status, payment_reference, total_price_usd, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.TelegramID, &o.DomainName, &o.NameserverMode, &o.CustomNameservers,
		&o.Email, &o.PaymentStatus, &o.PaymentReference, &o.TotalPriceUSD, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	const query = `UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetPaymentReference(ctx context.Context, orderID, reference string) error {
	const query = `UPDATE orders SET payment_reference=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, reference, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	return r.selectBatch(ctx, model.PaymentStatusPending, limit)
}

func (r *orderRepository) SelectConfirmedBatch(ctx context.Context, limit int) ([]model.Order, error) {
	return r.selectBatch(ctx, model.PaymentStatusConfirmed, limit)
}

func (r *orderRepository) selectBatch(ctx context.Context, status model.PaymentStatus, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE payment_status=$1
                    ORDER BY created_at
                    LIMIT $2
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, status, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) MarkCompleted(ctx context.Context, orderID string) error {
	const query = `UPDATE orders SET payment_status='completed', updated_at=NOW()
                   WHERE id=$1 AND payment_status IN ('confirmed', 'completed')`
	tag, err := r.storage.pool.Exec(ctx, query, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- DomainRepository implementation ---

const domainColumns = `id, domain_name, telegram_id, status, nameserver_mode, cloudflare_zone_id,
                       contact_handle, registrar_domain_id, nameservers, price_paid, created_at, expiry_date`

func scanDomain(row pgx.Row) (*model.RegisteredDomain, error) {
	var d model.RegisteredDomain
	err := row.Scan(&d.ID, &d.DomainName, &d.TelegramID, &d.Status, &d.NameserverMode, &d.CloudflareZoneID,
		&d.ContactHandle, &d.RegistrarDomainID, &d.Nameservers, &d.PricePaid, &d.CreatedAt, &d.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *domainRepository) GetByName(ctx context.Context, domainName string, telegramID int64) (*model.RegisteredDomain, error) {
	query := `SELECT ` + domainColumns + ` FROM registered_domains WHERE domain_name=$1 AND telegram_id=$2`
	domain, err := scanDomain(r.storage.pool.QueryRow(ctx, query, domainName, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return domain, nil
}

// Save writes the domain record within a single transaction: the insert and
// the read-back verification either both take effect or neither does. A
// cloudflare-mode record without a zone ID is refused before any SQL runs.
func (r *domainRepository) Save(ctx context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error) {
	if domain.NameserverMode == model.NameserverModeCloudflare &&
		(domain.CloudflareZoneID == nil || *domain.CloudflareZoneID == "") {
		return nil, domainErrors.ErrZoneIDMissing
	}

	saved := *domain
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO registered_domains
                (domain_name, telegram_id, status, nameserver_mode, cloudflare_zone_id,
                 contact_handle, registrar_domain_id, nameservers, price_paid, expiry_date)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
             ON CONFLICT (domain_name, telegram_id) DO NOTHING
             RETURNING id, created_at`
		err := tx.QueryRow(ctx, insertQuery,
			domain.DomainName, domain.TelegramID, domain.Status, domain.NameserverMode, domain.CloudflareZoneID,
			domain.ContactHandle, domain.RegistrarDomainID, domain.Nameservers, domain.PricePaid, domain.ExpiryDate,
		).Scan(&saved.ID, &saved.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrAlreadyExists
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		// Read back and confirm the stored zone ID matches what was requested.
		const verifyQuery = `SELECT cloudflare_zone_id FROM registered_domains WHERE id=$1`
		var storedZoneID *string
		if err := tx.QueryRow(ctx, verifyQuery, saved.ID).Scan(&storedZoneID); err != nil {
			return err
		}
		if !zoneIDsEqual(domain.CloudflareZoneID, storedZoneID) {
			return domainErrors.ErrZoneIDMismatch
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func zoneIDsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *domainRepository) ListByOwner(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error) {
	query := `SELECT ` + domainColumns + `
              FROM registered_domains WHERE telegram_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, telegramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RegisteredDomain
	for rows.Next() {
		domain, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *domain)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- WalletRepository implementation ---

func (r *walletRepository) Get(ctx context.Context, telegramID int64) (*model.Wallet, error) {
	const query = `SELECT balance_usd FROM wallets WHERE telegram_id=$1`
	wallet := model.Wallet{TelegramID: telegramID}
	err := r.storage.pool.QueryRow(ctx, query, telegramID).Scan(&wallet.BalanceUSD)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &wallet, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) Credit(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateBalance = `INSERT INTO wallets (telegram_id, balance_usd)
                               VALUES ($1, $2)
                               ON CONFLICT (telegram_id) DO UPDATE SET balance_usd = wallets.balance_usd + EXCLUDED.balance_usd`
		if _, err := tx.Exec(ctx, updateBalance, telegramID, amountUSD); err != nil {
			return err
		}

		const insertEntry = `INSERT INTO wallet_entries (telegram_id, order_id, amount_usd, kind) VALUES ($1, $2, $3, 'credit')`
		if _, err := tx.Exec(ctx, insertEntry, telegramID, orderID, amountUSD); err != nil {
			return err
		}
		return nil
	})
}

// DebitForOrder deducts the order price and flips the order to confirmed in
// one transaction, so a wallet payment cannot be charged without the order
// reflecting it.
func (r *walletRepository) DebitForOrder(ctx context.Context, telegramID int64, orderID string, amountUSD float64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const balanceQuery = `SELECT balance_usd FROM wallets WHERE telegram_id=$1 FOR UPDATE`
		var balance float64
		err := tx.QueryRow(ctx, balanceQuery, telegramID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				balance = 0
			} else {
				return err
			}
		}
		if balance < amountUSD {
			return domainErrors.ErrInsufficientBalance
		}

		const updateBalance = `UPDATE wallets SET balance_usd = balance_usd - $1 WHERE telegram_id=$2`
		if _, err := tx.Exec(ctx, updateBalance, amountUSD, telegramID); err != nil {
			return err
		}

		const insertEntry = `INSERT INTO wallet_entries (telegram_id, order_id, amount_usd, kind) VALUES ($1, $2, $3, 'debit')`
		if _, err := tx.Exec(ctx, insertEntry, telegramID, orderID, amountUSD); err != nil {
			return err
		}

		const confirmOrder = `UPDATE orders SET payment_status='confirmed', updated_at=NOW()
                              WHERE id=$1 AND payment_status='pending'`
		if _, err := tx.Exec(ctx, confirmOrder, orderID); err != nil {
			return err
		}
		return nil
	})
}

func (r *walletRepository) Entries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error) {
	const query = `SELECT id, telegram_id, order_id, amount_usd, kind, created_at
                   FROM wallet_entries WHERE telegram_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, telegramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WalletEntry
	for rows.Next() {
		var e model.WalletEntry
		if err := rows.Scan(&e.ID, &e.TelegramID, &e.OrderID, &e.AmountUSD, &e.Kind, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the underlying connection pool for advanced use.
func (s *Storage) Pool() pgxPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
