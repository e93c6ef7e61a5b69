package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "lenddesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendJSON = "json"
	StoreBackendDB   = "db"

	EnvAppEnv       = "LENDDESK_APP_ENV"
	EnvPort         = "LENDDESK_APP_PORT"
	EnvStoreBackend = "LENDDESK_STORE_BACKEND"
	EnvStorePath    = "LENDDESK_STORE_PATH"
	EnvDBDSN        = "LENDDESK_DB_DSN"
	EnvDBHost       = "LENDDESK_DB_HOST"
	EnvDBUser       = "LENDDESK_DB_USER"
	EnvDBName       = "LENDDESK_DB_NAME"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if cfg.Store.Backend == StoreBackendDB {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LENDDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"LENDDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LENDDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LENDDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the record store backend. The JSON document store is
// the default; "db" switches to the GORM-backed store.
type StoreConfig struct {
	Backend string `envconfig:"LENDDESK_STORE_BACKEND" default:"json"`
	Path    string `envconfig:"LENDDESK_STORE_PATH" default:"lending_db.json"`
}

func (s StoreConfig) validate() error {
	switch s.Backend {
	case StoreBackendJSON, StoreBackendDB:
		return nil
	}
	return fmt.Errorf("unknown store backend %q (expected %s or %s)", s.Backend, StoreBackendJSON, StoreBackendDB)
}

type DBConfig struct {
	DSN    string `envconfig:"LENDDESK_DB_DSN"`
	Driver string `envconfig:"LENDDESK_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"LENDDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"LENDDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LENDDESK_DB_USER"`
	LegacyPassword string `envconfig:"LENDDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"LENDDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"LENDDESK_DB_SSLMODE" default:"disable"`

	AutoMigrate bool `envconfig:"LENDDESK_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"LENDDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LENDDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LENDDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LENDDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

// ensureDSN backfills DSN from the legacy discrete variables when the single
// URL form is absent. SQLite deployments pass a file path straight through.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == "sqlite" {
		db.DSN = "lenddesk.sqlite"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
