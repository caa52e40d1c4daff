package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `environment: test
server:
  port: 8080
market:
  refresh_interval: 15s
feed:
  mode: mock
vigil:
  country_etf: TUR
  cache_ttl: 60s
log:
  level: info
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "test" {
		t.Fatalf("environment = %q", c.Environment)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("port = %d", c.Server.Port)
	}
	if c.Market.RefreshInterval != 15*time.Second {
		t.Fatalf("refresh interval = %v", c.Market.RefreshInterval)
	}
	if c.Vigil.CacheTTL != time.Minute {
		t.Fatalf("cache ttl = %v", c.Vigil.CacheTTL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateFeedMode(t *testing.T) {
	bad := `environment: test
market:
  refresh_interval: 15s
feed:
  mode: carrier-pigeon
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected invalid feed mode error")
	}
}

func TestValidateWSRequiresCredentials(t *testing.T) {
	bad := `environment: test
market:
  refresh_interval: 15s
feed:
  mode: ws
  websocket_url: wss://example.com
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected missing api key error")
	}
}

func TestValidateKafkaBrokers(t *testing.T) {
	bad := `environment: test
market:
  refresh_interval: 15s
feed:
  mode: mock
kafka:
  enabled: true
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected kafka brokers error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FEED_MODE", "mock")
	t.Setenv("WATCHLIST", "THYAO,GARAN")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Market.Watchlist) != 2 || c.Market.Watchlist[0] != "THYAO" {
		t.Fatalf("watchlist = %v", c.Market.Watchlist)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", c.Kafka.Brokers)
	}
}
