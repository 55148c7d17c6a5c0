package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	RedisAddr   string

	KafkaBrokers []string
	KafkaTopic   string

	RegistrarAPIURL      string
	RegistrarToken       string
	RegistrarNameservers []string

	DNSAPIURL   string
	DNSAPIToken string

	PaymentAPIURL     string
	PaymentAPIKey     string
	WebhookSecret     string
	OperatorTokenHash string

	PollInterval        time.Duration
	WorkerPoolSize      int
	BatchSize           int
	ShutdownTimeout     time.Duration
	PaymentTolerancePct float64
	PreRegPropagation   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultKafkaTopic        = "registration-events"
	defaultPollInterval      = 10 * time.Second
	defaultWorkerPoolSize    = 4
	defaultBatchSize         = 16
	defaultShutdownTimeout   = 10 * time.Second
	defaultTolerancePct      = 1.0
	defaultPreRegPropagation = 60 * time.Second
)

var defaultRegistrarNameservers = []string{"ns1.openprovider.nl", "ns2.openprovider.be"}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RedisAddr:            getString(lookup, "REDIS_ADDR", ""),
		KafkaBrokers:         getList(lookup, "KAFKA_BROKERS"),
		KafkaTopic:           getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		RegistrarAPIURL:      getString(lookup, "REGISTRAR_API_URL", ""),
		RegistrarToken:       getString(lookup, "REGISTRAR_TOKEN", ""),
		RegistrarNameservers: getListDefault(lookup, "REGISTRAR_NAMESERVERS", defaultRegistrarNameservers),
		DNSAPIURL:            getString(lookup, "DNS_API_URL", ""),
		DNSAPIToken:          getString(lookup, "DNS_API_TOKEN", ""),
		PaymentAPIURL:        getString(lookup, "PAYMENT_API_URL", ""),
		PaymentAPIKey:        getString(lookup, "PAYMENT_API_KEY", ""),
		WebhookSecret:        getString(lookup, "WEBHOOK_SECRET", ""),
		OperatorTokenHash:    getString(lookup, "OPERATOR_TOKEN_HASH", ""),
		PollInterval:         getDuration(lookup, "POLL_INTERVAL", defaultPollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		BatchSize:            getInt(lookup, "POLL_BATCH_SIZE", defaultBatchSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PaymentTolerancePct:  getFloat(lookup, "PAYMENT_TOLERANCE_PCT", defaultTolerancePct),
		PreRegPropagation:    getDuration(lookup, "PREREG_PROPAGATION_DELAY", defaultPreRegPropagation),
	}

	fs := flag.NewFlagSet("domainmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for order locks")
	fs.StringVar(&cfg.RegistrarAPIURL, "registrar", cfg.RegistrarAPIURL, "Registrar API base URL")
	fs.StringVar(&cfg.DNSAPIURL, "dns", cfg.DNSAPIURL, "DNS provider API base URL")
	fs.StringVar(&cfg.PaymentAPIURL, "payments", cfg.PaymentAPIURL, "Payment gateway base URL")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent pipeline workers")
	fs.IntVar(&cfg.BatchSize, "poll-batch", cfg.BatchSize, "Maximum orders per polling batch")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.WebhookSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PaymentTolerancePct < 0 || cfg.PaymentTolerancePct > 100 {
		return nil, fmt.Errorf("payment tolerance must be a percentage between 0 and 100")
	}

	if len(cfg.RegistrarNameservers) < 2 {
		return nil, fmt.Errorf("at least two registrar nameservers must be configured")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RegistrarAPIURL == "" {
		return nil, fmt.Errorf("registrar API URL must be provided")
	}

	if cfg.DNSAPIURL == "" {
		return nil, fmt.Errorf("DNS provider API URL must be provided")
	}

	if cfg.PaymentAPIURL == "" {
		return nil, fmt.Errorf("payment gateway URL must be provided")
	}

	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("webhook secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getListDefault(lookup envLookup, key string, def []string) []string {
	if list := getList(lookup, key); len(list) > 0 {
		return list
	}
	return append([]string(nil), def...)
}
