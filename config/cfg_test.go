package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[mysql]
dsn = "user:pass@tcp(localhost:3306)/ledger?parseTime=true"
automigrate = false

[http]
port = "9000"
allowed_origins = ["https://shop.example.com"]

[auth]
jwt_secret = "file-secret"
jwt_ttl = "2h"

[paystack]
secret_key = "sk_test_file"
callback_url = "https://shop.example.com/checkout/confirm"

[redis]
addr = "localhost:6379"
ttl = "5m"

[analytics]
timezone = "Africa/Lagos"

[tx_reconcile]
stale_after = "30m"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "user:pass@tcp(localhost:3306)/ledger?parseTime=true", cfg.DB.DSN)
	assert.False(t, cfg.DB.Automigrate)
	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "sk_test_file", cfg.Paystack.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "Africa/Lagos", cfg.Analytics.Timezone)

	assert.Equal(t, 30*time.Minute, cfg.TxReconcile.StaleAfter)
	assert.Equal(t, 24*time.Hour, cfg.TxReconcile.ExpireAfter)
	assert.Equal(t, 50, cfg.TxReconcile.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Checkout.CompleteTimeout)
	assert.Equal(t, 100, cfg.RateLimit.InitiatePerIPHour)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_env")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TX_RECONCILE__BATCH_SIZE", "10")

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.Paystack.SecretKey)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10, cfg.TxReconcile.BatchSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_USER", "ledger")
	t.Setenv("MYSQL_PASSWORD", "pw")
	t.Setenv("MYSQL_DATABASE", "ledger")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "ledger:pw@tcp(db.internal:3306)/ledger?charset=utf8mb4&parseTime=true", cfg.DB.DSN)
	assert.Equal(t, "8081", cfg.HTTP.Port)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[mysql\ndsn ="))
	assert.Error(t, err)
}
