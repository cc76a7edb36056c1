// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string `mapstructure:"env"`
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr            string        `mapstructure:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	// Meta is the meta-database holding the tenant registry.
	Meta struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"meta"`

	// Tenant holds per-tenant database settings.
	Tenant struct {
		DBUser            string        `mapstructure:"db_user"`
		DBPassword        string        `mapstructure:"db_password"`
		MaxConnsPerTenant int32         `mapstructure:"max_conns_per_tenant"`
		MinConnsPerTenant int32         `mapstructure:"min_conns_per_tenant"`
		MaxTotalPools     int           `mapstructure:"max_total_pools"`
		PoolIdleTimeout   time.Duration `mapstructure:"pool_idle_timeout"`
		HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	} `mapstructure:"tenant"`

	JWT struct {
		Secret          string        `mapstructure:"secret"`
		AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	} `mapstructure:"jwt"`

	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"metrics"`
}

// Load reads configuration from the given file, with CB_* environment
// variables taking precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.timezone", "UTC")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("tenant.max_conns_per_tenant", 10)
	v.SetDefault("tenant.min_conns_per_tenant", 2)
	v.SetDefault("tenant.max_total_pools", 100)
	v.SetDefault("tenant.pool_idle_timeout", 30*time.Minute)
	v.SetDefault("tenant.health_check_period", time.Minute)

	v.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_token_ttl", 720*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
