// Package config turns the raw values viper collects from flags, environment
// and the optional YAML file into a validated Config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"

	"route-analytics-service/internal/export"
	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/platform/events"
)

const (
	EnvPrefix      = "ROUTE_ANALYTICS"
	ConfigFileName = ".route-analytics"

	DefaultListenAddr      = ":8080"
	DefaultMaxOpenConns    = 20
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = "30m"
	DefaultCacheCapacity   = 256
	DefaultCacheTTL        = "10m"
	DefaultShutdownTimeout = "5s"
	DefaultLogLevel        = "info"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// RawInput holds the unvalidated values from all sources. Viper unmarshals
// into this struct.
type RawInput struct {
	ListenAddr      string `mapstructure:"listen-addr"`
	ShutdownTimeout string `mapstructure:"shutdown-timeout"`
	LogLevel        string `mapstructure:"log-level"`

	ValidateAirlines bool `mapstructure:"validate-airlines"`

	DBBackend         string `mapstructure:"db-backend"`
	DBDSN             string `mapstructure:"db-dsn"`
	DBMaxOpenConns    int    `mapstructure:"db-max-open-conns"`
	DBMaxIdleConns    int    `mapstructure:"db-max-idle-conns"`
	DBConnMaxLifetime string `mapstructure:"db-conn-max-lifetime"`
	AutoMigrate       bool   `mapstructure:"auto-migrate"`

	CacheCapacity int    `mapstructure:"cache-capacity"`
	CacheTTL      string `mapstructure:"cache-ttl"`

	NATSURL     string `mapstructure:"nats-url"`
	NATSSubject string `mapstructure:"nats-subject"`

	ExportS3Bucket    string `mapstructure:"export-s3-bucket"`
	ExportS3Region    string `mapstructure:"export-s3-region"`
	ExportS3Endpoint  string `mapstructure:"export-s3-endpoint"`
	ExportS3Prefix    string `mapstructure:"export-s3-prefix"`
	ExportS3AccessKey string `mapstructure:"export-s3-access-key"`
	ExportS3SecretKey string `mapstructure:"export-s3-secret-key"`
}

type DBConfig struct {
	Backend     database.Backend
	DSN         string
	Options     database.Options
	AutoMigrate bool
}

type CacheConfig struct {
	// Capacity 0 disables result caching.
	Capacity int
	TTL      time.Duration
}

type NATSConfig struct {
	// URL empty keeps invalidation in-process.
	URL     string
	Subject string
}

type ExportConfig struct {
	S3     export.S3Config
	Prefix string
}

// UploadEnabled reports whether exports should go to S3.
func (e ExportConfig) UploadEnabled() bool {
	return e.S3.Bucket != ""
}

// Config is the validated, final configuration.
type Config struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogLevel        log.Level
	DB              DBConfig
	Cache           CacheConfig
	NATS            NATSConfig
	Export          ExportConfig

	// ValidateAirlines rejects routes whose airline is not registered.
	ValidateAirlines bool
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen-addr", DefaultListenAddr)
	v.SetDefault("shutdown-timeout", DefaultShutdownTimeout)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("validate-airlines", false)
	v.SetDefault("db-backend", string(database.Postgres))
	v.SetDefault("db-dsn", "")
	v.SetDefault("db-max-open-conns", DefaultMaxOpenConns)
	v.SetDefault("db-max-idle-conns", DefaultMaxIdleConns)
	v.SetDefault("db-conn-max-lifetime", DefaultConnMaxLifetime)
	v.SetDefault("auto-migrate", true)
	v.SetDefault("cache-capacity", DefaultCacheCapacity)
	v.SetDefault("cache-ttl", DefaultCacheTTL)
	v.SetDefault("nats-url", "")
	v.SetDefault("nats-subject", events.DefaultSubject)
	v.SetDefault("export-s3-bucket", "")
	v.SetDefault("export-s3-region", export.DefaultRegion)
	v.SetDefault("export-s3-endpoint", "")
	v.SetDefault("export-s3-prefix", "")
	v.SetDefault("export-s3-access-key", "")
	v.SetDefault("export-s3-secret-key", "")
}

// Setup points v at the config file (explicit path or .route-analytics.yaml
// in . or $HOME) and the ROUTE_ANALYTICS_* environment.
func Setup(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// Load reads the config file if one exists, then unmarshals and validates
// everything v has resolved.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var in RawInput
	if err := v.Unmarshal(&in); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return Process(in)
}

// Process validates raw input into a Config.
func Process(in RawInput) (*Config, error) {
	cfg := &Config{
		ListenAddr: strings.TrimSpace(in.ListenAddr),
		NATS: NATSConfig{
			URL:     strings.TrimSpace(in.NATSURL),
			Subject: strings.TrimSpace(in.NATSSubject),
		},
	}
	if cfg.ListenAddr == "" {
		return nil, invalid("listen-addr is required")
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = events.DefaultSubject
	}
	cfg.ValidateAirlines = in.ValidateAirlines

	var err error
	if cfg.ShutdownTimeout, err = positiveDuration("shutdown-timeout", in.ShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = ParseLogLevel(in.LogLevel); err != nil {
		return nil, err
	}
	if err := processDB(cfg, in); err != nil {
		return nil, err
	}
	if err := processCache(cfg, in); err != nil {
		return nil, err
	}
	if err := processExport(cfg, in); err != nil {
		return nil, err
	}
	return cfg, nil
}

func processDB(cfg *Config, in RawInput) error {
	backend, err := database.ParseBackend(in.DBBackend)
	if err != nil {
		return invalid(err.Error())
	}
	if in.DBMaxOpenConns < 0 || in.DBMaxIdleConns < 0 {
		return invalid("db connection limits must not be negative")
	}
	lifetime, err := positiveDuration("db-conn-max-lifetime", in.DBConnMaxLifetime)
	if err != nil {
		return err
	}

	cfg.DB = DBConfig{
		Backend: backend,
		DSN:     strings.TrimSpace(in.DBDSN),
		Options: database.Options{
			MaxOpenConns:    in.DBMaxOpenConns,
			MaxIdleConns:    in.DBMaxIdleConns,
			ConnMaxLifetime: lifetime,
		},
		AutoMigrate: in.AutoMigrate,
	}
	return nil
}

func processCache(cfg *Config, in RawInput) error {
	if in.CacheCapacity < 0 {
		return invalid("cache-capacity must not be negative")
	}
	ttl, err := time.ParseDuration(strings.TrimSpace(in.CacheTTL))
	if err != nil || ttl < 0 {
		return invalid(fmt.Sprintf("cache-ttl %q is not a valid duration", in.CacheTTL))
	}
	cfg.Cache = CacheConfig{Capacity: in.CacheCapacity, TTL: ttl}
	return nil
}

func processExport(cfg *Config, in RawInput) error {
	s3cfg := export.S3Config{
		Endpoint:        strings.TrimSpace(in.ExportS3Endpoint),
		Region:          strings.TrimSpace(in.ExportS3Region),
		Bucket:          strings.TrimSpace(in.ExportS3Bucket),
		AccessKeyID:     strings.TrimSpace(in.ExportS3AccessKey),
		SecretAccessKey: in.ExportS3SecretKey,
	}
	if s3cfg.Bucket != "" {
		if err := s3cfg.Validate(); err != nil {
			return invalid(err.Error())
		}
	}
	cfg.Export = ExportConfig{S3: s3cfg, Prefix: strings.TrimSpace(in.ExportS3Prefix)}
	return nil
}

// RequireDSN reports an error when no database DSN is configured.
func (c *Config) RequireDSN() error {
	if c.DB.DSN == "" {
		return invalid("db-dsn is required")
	}
	return nil
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"fatal": log.LevelFatal,
	"panic": log.LevelPanic,
}

func ParseLogLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultLogLevel
	}
	level, ok := logLevels[s]
	if !ok {
		return 0, invalid(fmt.Sprintf("unknown log-level %q", s))
	}
	return level, nil
}

func positiveDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 0, invalid(fmt.Sprintf("%s %q is not a positive duration", key, raw))
	}
	return d, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
