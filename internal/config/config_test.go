package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURL)
	require.Equal(t, "mergington_school", cfg.MongoDatabase)
	require.Equal(t, "activities", cfg.MongoCollection)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg := Load()

	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "soon")

	cfg := Load()
	require.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
}
