package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	cfg := Load()
	if cfg.StoreDriver != "postgres" {
		t.Fatalf("store driver = %q, want postgres", cfg.StoreDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("jwt ttl = %v", cfg.JWTTTL)
	}
	if cfg.HighSpendingBasis != "transaction" {
		t.Fatalf("high spending basis = %q", cfg.HighSpendingBasis)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("DEBUG_METRICS_ENABLED", "nope")
	cfg := Load()
	if cfg.StoreDriver != "memory" {
		t.Fatalf("store driver = %q, want memory", cfg.StoreDriver)
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Fatalf("store timeout = %v", cfg.StoreTimeout)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.DBMaxConns)
	}
	if !cfg.DebugMetricsEnabled {
		t.Fatalf("invalid bool should fall back to default true")
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("CORSOrigins() = %v", got)
	}
	if len(cfg.ESAddrs()) != 0 {
		t.Fatalf("empty ES addrs should yield empty slice")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	if got := cfg.PostgresDSN(); got != "postgres://u:p@h:1/d?sslmode=disable" {
		t.Fatalf("dsn = %s", got)
	}
}
