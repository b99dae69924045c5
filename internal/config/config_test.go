package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRebuilderConfig_RequiresDatabaseHost(t *testing.T) {
	_, err := LoadRebuilderConfig("", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoadRebuilderConfig_RequiresDatabaseName(t *testing.T) {
	t.Setenv("CAPLEDGER_DATABASE_HOST", "localhost")

	_, err := LoadRebuilderConfig("", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname")
}

func TestLoadRebuilderConfig_FromEnvironment(t *testing.T) {
	t.Setenv("CAPLEDGER_DATABASE_HOST", "db.internal")
	t.Setenv("CAPLEDGER_DATABASE_DBNAME", "capledger")
	t.Setenv("CAPLEDGER_DATABASE_USER", "svc")
	t.Setenv("CAPLEDGER_NATS_URL", "nats://broker:4222")

	cfg, err := LoadRebuilderConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "capledger", cfg.Database.DBName)
	assert.Equal(t, "svc", cfg.Database.User)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
}

func TestLoadRebuilderConfig_Defaults(t *testing.T) {
	t.Setenv("CAPLEDGER_DATABASE_HOST", "localhost")
	t.Setenv("CAPLEDGER_DATABASE_DBNAME", "capledger")

	cfg, err := LoadRebuilderConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "CONTRACT_REBUILDS", cfg.NATS.StreamName)
	assert.Equal(t, 8, cfg.Engine.PoolSize)

	schedule, err := cfg.Liability.Schedule()
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 0.5, 2: 0.5, 3: 0.25, 4: 0.25}, schedule)
}

func TestLoadRebuilderConfig_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
database:
  host: filehost
  dbname: filedb
engine:
  pool_size: 2
liability:
  fractions:
    "1": 1.0
    "2": 0.5
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := LoadRebuilderConfig(configPath, dir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "filehost", cfg.Database.Host)
	assert.Equal(t, 2, cfg.Engine.PoolSize)

	schedule, err := cfg.Liability.Schedule()
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 1.0, 2: 0.5}, schedule)
}

func TestLoadRebuilderConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
database:
  host: filehost
  dbname: filedb
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	t.Setenv("CAPLEDGER_DATABASE_HOST", "envhost")

	cfg, err := LoadRebuilderConfig(configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "filedb", cfg.Database.DBName)
}

func TestLoadRebuilderConfig_EnvFilesLoaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CAPLEDGER_DATABASE_HOST=envfilehost\nCAPLEDGER_DATABASE_DBNAME=envfiledb\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CAPLEDGER_DATABASE_HOST")
		os.Unsetenv("CAPLEDGER_DATABASE_DBNAME")
	})

	cfg, err := LoadRebuilderConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, "envfilehost", cfg.Database.Host)
	assert.Equal(t, "envfiledb", cfg.Database.DBName)
}

func TestLiabilityConfig_ScheduleRejectsNonIntegerKeys(t *testing.T) {
	cfg := LiabilityConfig{Fractions: map[string]float64{"one": 0.5}}

	_, err := cfg.Schedule()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5433, User: "svc", Password: "secret",
		DBName: "capledger", SSLMode: "require",
	}

	assert.Equal(t,
		"host=db port=5433 user=svc password=secret dbname=capledger sslmode=require",
		cfg.DSN())
}

func TestDatabaseConfig_ReadDSNFallsBackToPrimaryPort(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5433, ReadHost: "db-ro", User: "svc", Password: "secret",
		DBName: "capledger", SSLMode: "require",
	}

	assert.Contains(t, cfg.ReadDSN(), "host=db-ro port=5433")

	cfg.ReadPort = 6000
	assert.Contains(t, cfg.ReadDSN(), "port=6000")
}
