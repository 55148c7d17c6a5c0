package config

import (
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":      "postgres://localhost/domainmart",
		"REGISTRAR_API_URL": "https://registrar.example",
		"DNS_API_URL":       "https://dns.example",
		"PAYMENT_API_URL":   "https://pay.example",
		"WEBHOOK_SECRET":    "hunter2",
	}
}

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("unexpected poll interval %s", cfg.PollInterval)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("unexpected worker pool size %d", cfg.WorkerPoolSize)
	}
	if cfg.PaymentTolerancePct != defaultTolerancePct {
		t.Fatalf("unexpected tolerance %f", cfg.PaymentTolerancePct)
	}
	if len(cfg.RegistrarNameservers) != 2 {
		t.Fatalf("unexpected registrar nameservers %v", cfg.RegistrarNameservers)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no kafka brokers by default, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadRequiresMandatoryValues(t *testing.T) {
	for _, missing := range []string{"DATABASE_URI", "REGISTRAR_API_URL", "DNS_API_URL", "PAYMENT_API_URL", "WEBHOOK_SECRET"} {
		env := baseEnv()
		delete(env, missing)
		if _, err := load(nil, lookupFrom(env)); err == nil {
			t.Fatalf("expected error when %s is missing", missing)
		}
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9000"

	cfg, err := load([]string{"-a", ":7000", "-poll-interval", "30s"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7000" {
		t.Fatalf("expected flag to win, got %s", cfg.RunAddress)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("unexpected poll interval %s", cfg.PollInterval)
	}
}

func TestLoadParsesBrokerList(t *testing.T) {
	env := baseEnv()
	env["KAFKA_BROKERS"] = "b1:9092, b2:9092 ,"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "b1:9092" || cfg.KafkaBrokers[1] != "b2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestLoadRejectsBadTolerance(t *testing.T) {
	env := baseEnv()
	env["PAYMENT_TOLERANCE_PCT"] = "250"

	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for tolerance above 100")
	}
}

func TestLoadInvalidDurationFlag(t *testing.T) {
	if _, err := load([]string{"-poll-interval", "bogus"}, lookupFrom(baseEnv())); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
