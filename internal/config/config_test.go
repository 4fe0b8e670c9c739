package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "config/policy.yaml", cfg.PolicyPath)
	assert.Equal(t, "data/facilities.json", cfg.FacilitiesPath)
	assert.Equal(t, "data/zones.json", cfg.ZonesPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Second, cfg.ClassifyTimeout)
	assert.Equal(t, 5, cfg.NearestK)
	assert.False(t, cfg.AuditEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "sentinel-decisions", cfg.KafkaAuditTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("POLICY_PATH", "/etc/sentinel/policy.yaml")
	t.Setenv("FACILITIES_PATH", "/srv/data/facilities.json")
	t.Setenv("ZONES_PATH", "/srv/data/zones.json")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CLASSIFY_TIMEOUT", "500ms")
	t.Setenv("NEAREST_K", "3")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_AUDIT_TOPIC", "custom-audit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/sentinel/policy.yaml", cfg.PolicyPath)
	assert.Equal(t, "/srv/data/facilities.json", cfg.FacilitiesPath)
	assert.Equal(t, "/srv/data/zones.json", cfg.ZonesPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.ClassifyTimeout)
	assert.Equal(t, 3, cfg.NearestK)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-audit", cfg.KafkaAuditTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeClassifyTimeout(t *testing.T) {
	t.Setenv("CLASSIFY_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLASSIFY_TIMEOUT")
}

func TestLoad_InvalidNearestK(t *testing.T) {
	t.Setenv("NEAREST_K", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEAREST_K")
}

func TestLoad_BrokersImplyAuditEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AuditEnabled)
}

func TestLoad_AuditExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("AUDIT_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AuditEnabled)
}

func TestLoad_AuditEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("AUDIT_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
