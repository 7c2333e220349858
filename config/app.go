package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	DBName string
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DSN    string // raw DSN override; when set the discrete DB_* fields are ignored
	DBSync bool   // run schema sync (AutoMigrate) during startup verification

	RedisAddr  string
	RedisPass  string
	SearchAddr string // Elasticsearch; empty disables search
	MediaDir   string // avatar storage directory
}

// requiredVars are the environment variables that must be present when no
// MYSQL_DSN override is given. Missing ones are reported together.
var requiredVars = []string{"DB_NAME", "DB_USER", "DB_HOST"}

var loadErr error

// LoadAppConfig builds and validates the global AppConfig once. It returns an
// error naming every missing required variable rather than failing on the
// first access somewhere deep in a handler.
func LoadAppConfig() (*Config, error) {
	once.Do(func() {
		cfg := &Config{
			AppName:    os.Getenv("APP_NAME"),
			Port:       os.Getenv("PORT"),
			Env:        os.Getenv("APP_ENV"),
			Debug:      os.Getenv("DEBUG") == "true",
			DBName:     os.Getenv("DB_NAME"),
			DBUser:     os.Getenv("DB_USER"),
			DBPass:     os.Getenv("DB_PASS"),
			DBHost:     os.Getenv("DB_HOST"),
			DBPort:     os.Getenv("DB_PORT"),
			DSN:        os.Getenv("MYSQL_DSN"),
			DBSync:     os.Getenv("DB_SYNC") == "true",
			RedisAddr:  os.Getenv("REDIS_ADDR"),
			RedisPass:  os.Getenv("REDIS_PASS"),
			SearchAddr: os.Getenv("ELASTICSEARCH_HOST"),
			MediaDir:   os.Getenv("MEDIA_DIR"),
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if cfg.DBPort == "" {
			cfg.DBPort = "3306"
		}
		if cfg.MediaDir == "" {
			cfg.MediaDir = "media"
		}
		if e := cfg.validate(); e != nil {
			loadErr = e
			return
		}
		AppConfig = cfg
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return AppConfig, nil
}

func (c *Config) validate() error {
	if c.DSN != "" {
		return nil
	}
	var missing []string
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MySQLDSN returns the DSN override when set, otherwise assembles one from the
// discrete DB_* fields.
func (c *Config) MySQLDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// ResetForTesting clears the cached config so tests can reload with different env.
func ResetForTesting() {
	AppConfig = nil
	loadErr = nil
	once = sync.Once{}
}
