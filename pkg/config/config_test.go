package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Allocation.ReserveUnits, "por defecto las unidades emparejadas se reservan")
	assert.Equal(t, 7, cfg.Allocation.ExpiringSoonDays)
	assert.Equal(t, 60, cfg.Allocation.ExpirySweepMinutes)
	assert.Equal(t, "postgres://postgres:@localhost:5432/bloodbank?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, "none", cfg.DB.LogLevel)
	assert.Equal(t, "bloodbank-api", cfg.DB.AppName)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("ALLOCATION_RESERVE_UNITS", "false")
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("DATABASE_URL", "")
	v.Set("DB_LOG_LEVEL", "WARN")
	v.Set("APP_NAME", "bb-norte")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.DB.LogLevel)
	assert.Equal(t, "bb-norte", cfg.DB.AppName)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Allocation.ReserveUnits)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword", "la contraseña debe ir codificada")
}

func TestFromViper_DatabaseURLTienePrioridad(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_URL", "postgresql://u:p@db.example.com:6543/bb?sslmode=require")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db.example.com:6543/bb?sslmode=require", cfg.DB.ConnectionString())
}

func TestFromViper_ProductionSinSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_ValoresInvalidosUsanDefault(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "abc")
	v.Set("ALLOCATION_RESERVE_UNITS", "quizá")
	v.Set("ALLOCATION_EXPIRING_SOON_DAYS", "0")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Allocation.ReserveUnits)
	assert.Equal(t, 7, cfg.Allocation.ExpiringSoonDays)
}
