package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend modes.
const (
	StorageModeFile   = "file"
	StorageModeRedis  = "redis"
	StorageModeRemote = "remote"
)

// AppConfig holds configuration values resolved from config.yaml and the
// environment. Sensitive values have no code defaults and must be provided.
type AppConfig struct {
	AppPort            string
	GinMode            string
	JWTSecret          string
	JWTTTLHours        int
	RateLimitPerMinute int
	BcryptCost         int
	AllowedOrigins     []string
	AdminUsernames     []string

	// Storage adapter selection for the post/comment collections.
	StorageMode   string
	DataDir       string
	RemoteBaseURL string
	RemoteToken   string

	// Relational store for user accounts.
	DBDriver string
	DBDSN    string

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load resolves configuration once during boot. Precedence: environment
// variables over config.yaml over defaults. Keys use dots in the file
// (storage.mode) and underscores in the environment (STORAGE_MODE).
func Load() AppConfig {
	if loaded {
		return cfg
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.gin_mode", "release")
	v.SetDefault("app.jwt_ttl_hours", 72)
	v.SetDefault("app.rate_limit_per_minute", 60)
	v.SetDefault("app.bcrypt_cost", 10)
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("storage.mode", StorageModeFile)
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/users.db")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("invalid config file: %v", err)
		}
	}

	cfg = AppConfig{
		AppPort:            v.GetString("app.port"),
		GinMode:            v.GetString("app.gin_mode"),
		JWTSecret:          v.GetString("app.jwt_secret"),
		JWTTTLHours:        v.GetInt("app.jwt_ttl_hours"),
		RateLimitPerMinute: v.GetInt("app.rate_limit_per_minute"),
		BcryptCost:         v.GetInt("app.bcrypt_cost"),
		AllowedOrigins:     splitList(v.GetStringSlice("app.allowed_origins")),
		AdminUsernames:     splitList(v.GetStringSlice("app.admin_usernames")),
		StorageMode:        v.GetString("storage.mode"),
		DataDir:            v.GetString("storage.data_dir"),
		RemoteBaseURL:      v.GetString("storage.remote_base_url"),
		RemoteToken:        v.GetString("storage.remote_token"),
		DBDriver:           v.GetString("database.driver"),
		DBDSN:              v.GetString("database.dsn"),
		RedisHost:          v.GetString("redis.host"),
		RedisPort:          v.GetInt("redis.port"),
		RedisDB:            v.GetInt("redis.db"),
		RedisPassword:      v.GetString("redis.password"),
		LogLevel:           v.GetString("log.level"),
		LogPath:            v.GetString("log.path"),
		LogMaxSizeMB:       v.GetInt("log.max_size_mb"),
		LogMaxBackups:      v.GetInt("log.max_backups"),
		LogMaxAgeDays:      v.GetInt("log.max_age_days"),
		LogCompress:        v.GetBool("log.compress"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("APP_JWT_SECRET must be set in the environment or config file")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// IsAdminUsername reports whether username is configured as a bootstrap admin.
// Comparison is case-insensitive, matching how operators list names.
func IsAdminUsername(username string) bool {
	for _, u := range Get().AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), username) {
			return true
		}
	}
	return false
}

// splitList also accepts single comma-separated entries, which is how list
// values arrive via environment variables.
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
