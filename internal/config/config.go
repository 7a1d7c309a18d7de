package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Map       MapConfig
	Providers ProvidersConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Tracing   TracingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	GinMode         string // debug, release, test
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	MachineName     string // stored as nome_pc
	LocateOnStartup bool
}

// MapConfig holds the map view parameters
type MapConfig struct {
	ContainerID string
	Zoom        int
	TileURL     string
	MaxZoom     int
	Attribution string
	SourceURL   string // /dados endpoint consumed by the mapview CLI
}

// ProvidersConfig holds upstream API settings
type ProvidersConfig struct {
	IpifyURL     string
	IpinfoURL    string
	IpinfoToken  string
	NominatimURL string
	Timeout      time.Duration
}

// StorageConfig selects and configures the location store
type StorageConfig struct {
	Backend  string // file, s3, postgres
	File     FileStorageConfig
	S3       S3StorageConfig
	Postgres PostgresStorageConfig
}

type FileStorageConfig struct {
	Path string
}

type S3StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	Key       string
}

type PostgresStorageConfig struct {
	URL string
}

// CacheConfig configures the geolocation cache; an empty RedisAddr disables it
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// TracingConfig configures span export; an empty ZipkinURL disables export
type TracingConfig struct {
	ZipkinURL   string
	ServiceName string
}

const (
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `Map data © <a href="https://openstreetmap.org">OpenStreetMap</a> contributors`
)

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.machinename", "Computador Teste 1")
	v.SetDefault("app.locateonstartup", true)
	v.SetDefault("map.containerid", "map")
	v.SetDefault("map.zoom", 13)
	v.SetDefault("map.tileurl", DefaultTileURL)
	v.SetDefault("map.maxzoom", 18)
	v.SetDefault("map.attribution", DefaultAttribution)
	v.SetDefault("map.sourceurl", "http://localhost:8080/dados")
	v.SetDefault("providers.ipifyurl", "https://api.ipify.org")
	v.SetDefault("providers.ipinfourl", "https://ipinfo.io")
	v.SetDefault("providers.ipinfotoken", "")
	v.SetDefault("providers.nominatimurl", "https://nominatim.openstreetmap.org/reverse")
	v.SetDefault("providers.timeout", 15*time.Second)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file.path", "localizacao.json")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.accesskey", "")
	v.SetDefault("storage.s3.secretkey", "")
	v.SetDefault("storage.s3.usessl", false)
	v.SetDefault("storage.s3.bucket", "location-map")
	v.SetDefault("storage.s3.region", "")
	v.SetDefault("storage.s3.key", "localizacao.json")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("cache.redisaddr", "")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("tracing.zipkinurl", "")
	v.SetDefault("tracing.servicename", "location-map")
}

// Load reads configuration from the global viper instance, the config file and environment variables
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration into v, which may already carry bound flags
func LoadFrom(v *viper.Viper) (*Config, error) {
	// A .env file is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.location-map")

	SetDefaults(v)

	// Read from environment variables, e.g. LOCATION_MAP_STORAGE_BACKEND
	v.SetEnvPrefix("LOCATION_MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(c.Log.Level),
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
