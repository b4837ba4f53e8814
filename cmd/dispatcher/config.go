package main

import "time"

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"notify-dispatcher"`

	NATSIngest        bool          `env:"NATS_INGEST_ENABLED" envDefault:"false"`
	DiagnosticsBuffer int           `env:"DIAGNOSTICS_BUFFER_SIZE" envDefault:"1000"`
	DiagnosticsWrite  time.Duration `env:"DIAGNOSTICS_WRITE_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}
