package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/meridian/internal/crs"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the projection service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API and monitoring endpoints.
// - Workers: The number of concurrent workers projecting a batch.
// - ShutdownTimeout: How long the server waits for in-flight requests on exit.
// - DefaultCRS: The code of the CRS used when a request names none.
// - CRS: Extra CRS definitions registered next to the built-in ones.
type Config struct {
	Env             string           `mapstructure:"env"`
	Port            int              `mapstructure:"port"`
	Workers         int              `mapstructure:"workers"`
	ShutdownTimeout time.Duration    `mapstructure:"shutdown_timeout"`
	DefaultCRS      string           `mapstructure:"default_crs"`
	CRS             []crs.Definition `mapstructure:"crs"`
}

// MustLoad reads .env, an optional YAML file named by MERIDIAN_CONFIG_FILE
// and MERIDIAN_* environment variables, in increasing priority. It panics on
// any malformed value.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("workers", "4")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("default_crs", crs.CodeEPSG3857)

	v.SetEnvPrefix("MERIDIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil || port <= 0 || port > 65535 {
		panic("failed to parse port from configuration, must be 1-65535")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil || workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	var definitions []crs.Definition
	if err := v.UnmarshalKey("crs", &definitions); err != nil {
		panic("failed to parse crs definitions from configuration")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		Workers:         workers,
		ShutdownTimeout: shutdownTimeout,
		DefaultCRS:      v.GetString("default_crs"),
		CRS:             definitions,
	}
}

// Registry builds the CRS registry described by c: the built-in systems,
// then the configured definitions, with DefaultCRS as the default.
func (c *Config) Registry() (*crs.Registry, error) {
	registry, err := crs.Builtin().RegisterDefinitions(c.CRS...)
	if err != nil {
		return nil, err
	}

	return registry.WithDefault(c.DefaultCRS)
}
