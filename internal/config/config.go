package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	NetAddr       string `env:"RUN_ADDRESS"`
	DatabaseURI   string `env:"DATABASE_URI"`
	LogLevel      string `env:"LOG_LEVEL"`
	CORSOrigins   string `env:"CORS_ORIGINS"`
	JWTSecret     string `env:"JWT_SECRET"`
	AdminLogin    string `env:"ADMIN_LOGIN"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads flags first, then lets environment variables override them.
func Load() (config Config, err error) {
	flag.StringVar(&config.NetAddr, "a", "localhost:8080", "net address host:port")
	flag.StringVar(&config.DatabaseURI, "d", "", "postgres connection string")
	flag.StringVar(&config.LogLevel, "l", "info", "log level")
	flag.StringVar(&config.CORSOrigins, "c", "", "comma-separated allowed CORS origins")
	flag.StringVar(&config.JWTSecret, "s", "", "secret for signing admin tokens")
	flag.StringVar(&config.AdminLogin, "admin-login", "", "bootstrap admin login")
	flag.StringVar(&config.AdminPassword, "admin-password", "", "bootstrap admin password")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("parse config from env: %w", err)
	}
	return config, nil
}
