package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"bizarre-bazaar/internal/logger"

	"github.com/joho/godotenv"
)

const (
	SeedEmbedded = "embedded"
	SeedMongo    = "mongo"
	SeedSQLite   = "sqlite"
)

type Config struct {
	AppPort                string
	AppName                string
	Env                    string
	LogLevel               string
	SeedSource             string
	MongoURI               string
	MongoDBName            string
	SQLitePath             string
	ExternalGRPC           string
	ExternalHTTP           string
	ClientMaxSleepMs       int64
	DnsResolverDelayMs     int64
	MetricsAddr            string
	SessionIdleTTLMs       int64
	SessionMax             int64
	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
	TraceStdout            bool
}

// SafeConfig is the loggable subset of Config; connection strings are left out.
type SafeConfig struct {
	AppPort                string `json:"app_port"`
	AppName                string `json:"app_name"`
	Env                    string `json:"env"`
	LogLevel               string `json:"log_level"`
	SeedSource             string `json:"seed_source"`
	MongoDBName            string `json:"mongo_db_name"`
	SQLitePath             string `json:"sqlite_path"`
	ExternalGRPC           string `json:"external_grpc"`
	ExternalHTTP           string `json:"external_http"`
	ClientMaxSleepMs       int64  `json:"client_max_sleep_ms"`
	DnsResolverDelayMs     int64  `json:"dns_resolver_delay_ms"`
	MetricsAddr            string `json:"metrics_addr"`
	SessionIdleTTLMs       int64  `json:"session_idle_ttl_ms"`
	SessionMax             int64  `json:"session_max"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
	TraceStdout            bool   `json:"trace_stdout"`
}

// MissingEnvError lists required variables that were empty.
type MissingEnvError struct {
	Missing []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Missing, ", ")
}

func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppPort:                c.AppPort,
		AppName:                c.AppName,
		Env:                    c.Env,
		LogLevel:               c.LogLevel,
		SeedSource:             c.SeedSource,
		MongoDBName:            c.MongoDBName,
		SQLitePath:             c.SQLitePath,
		ExternalGRPC:           c.ExternalGRPC,
		ExternalHTTP:           c.ExternalHTTP,
		ClientMaxSleepMs:       c.ClientMaxSleepMs,
		DnsResolverDelayMs:     c.DnsResolverDelayMs,
		MetricsAddr:            c.MetricsAddr,
		SessionIdleTTLMs:       c.SessionIdleTTLMs,
		SessionMax:             c.SessionMax,
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
		TraceStdout:            c.TraceStdout,
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				out.WriteRune('_')
			}
			out.WriteRune(unicode.ToLower(r))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// StructAttrs("data", cfg) ➜ []slog.Attr{ slog.String("data.app_port", "3001"), ... }
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + "." + jsonKey(f)

		switch v.Field(i).Kind() {
		case reflect.String:
			attrs = append(attrs, slog.String(key, v.Field(i).String()))
		case reflect.Int, reflect.Int64, reflect.Int32:
			attrs = append(attrs, slog.Int64(key, v.Field(i).Int()))
		case reflect.Bool:
			attrs = append(attrs, slog.Bool(key, v.Field(i).Bool()))
		default:
			attrs = append(attrs, slog.Any(key, v.Field(i).Interface()))
		}
	}
	return attrs
}

// jsonKey prefers the json tag and falls back to snake_case.
func jsonKey(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return toSnake(f.Name)
}

var log = logger.Instance()

var (
	configInstance *Config
	configOnce     sync.Once
)

func getInt64(varName string, fallback int64) int64 {
	val := os.Getenv(varName)
	if val == "" {
		return fallback
	}

	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil || num < 0 {
		log.Warn("Invalid integer env, using fallback",
			slog.String("var", varName),
			slog.String("value", val),
			slog.Int64("fallback", fallback),
		)
		return fallback
	}
	return num
}

func getBool(varName string) bool {
	b, err := strconv.ParseBool(os.Getenv(varName))
	return err == nil && b
}

func getString(varName, fallback string) string {
	if v := os.Getenv(varName); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment (and .env when present) and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	cfg := &Config{
		AppPort:                os.Getenv("APP_PORT"),
		AppName:                os.Getenv("APP_NAME"),
		Env:                    getString("ENV", "development"),
		LogLevel:               getString("LOG_LEVEL", "info"),
		SeedSource:             strings.ToLower(getString("SEED_SOURCE", SeedEmbedded)),
		MongoURI:               os.Getenv("MONGO_URI"),
		MongoDBName:            os.Getenv("MONGO_DB_NAME"),
		SQLitePath:             os.Getenv("SQLITE_PATH"),
		ExternalGRPC:           os.Getenv("EXTERNAL_GRPC"),
		ExternalHTTP:           os.Getenv("EXTERNAL_HTTP"),
		ClientMaxSleepMs:       getInt64("CLIENT_MAX_SLEEP_MS", 1000),
		DnsResolverDelayMs:     getInt64("DNS_RESOLVER_DELAY_MS", 0),
		MetricsAddr:            os.Getenv("METRICS_ADDR"),
		SessionIdleTTLMs:       getInt64("SESSION_IDLE_TTL_MS", 30*60*1000),
		SessionMax:             getInt64("SESSION_MAX", 10000),
		RemoteLogHttpURI:       os.Getenv("REMOTE_LOG_HTTP_URI"),
		RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
		RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
		TraceStdout:            getBool("TRACE_STDOUT"),
	}

	if cfg.RemoteLogHttpURI == "" {
		log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
	}
	if cfg.RemoteTraceRpcURI == "" {
		log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
	}
	if cfg.RemoteProfilingHttpURI == "" {
		log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
	}

	var missing []string
	if cfg.AppPort == "" {
		missing = append(missing, "APP_PORT")
	}
	if cfg.AppName == "" {
		missing = append(missing, "APP_NAME")
	}
	switch cfg.SeedSource {
	case SeedEmbedded:
	case SeedMongo:
		if cfg.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if cfg.MongoDBName == "" {
			missing = append(missing, "MONGO_DB_NAME")
		}
	case SeedSQLite:
		if cfg.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	default:
		return nil, fmt.Errorf("unknown SEED_SOURCE %q", cfg.SeedSource)
	}

	if len(missing) > 0 {
		return nil, &MissingEnvError{Missing: missing}
	}
	return cfg, nil
}

// Instance loads the configuration once and exits the process when it is
// invalid.
func Instance() *Config {
	configOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Error("Invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		configInstance = cfg
		logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

		attrs := StructAttrs("data", cfg.ToSafeConfig())
		anyAttrs := make([]any, len(attrs))
		for i, a := range attrs {
			anyAttrs[i] = a
		}
		log.Info("Configuration loaded successfully", anyAttrs...)
	})

	return configInstance
}
