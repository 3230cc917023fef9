// internal/config/config.go
package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// QuizConfig は出題ロジックの調整値です
type QuizConfig struct {
	TopWindow        int `mapstructure:"top_window"`         // 正解候補をランダムに選ぶ上位件数
	SinglePoolSize   int `mapstructure:"single_pool_size"`   // 単問の誤答プール件数
	ListPoolSize     int `mapstructure:"list_pool_size"`     // 一括出題の誤答プール件数
	ReviewLimit      int `mapstructure:"review_limit"`       // フラッシュカードの1ページ件数
	ListLimit        int `mapstructure:"list_limit"`         // 一括出題のデフォルト問題数
	DefaultPageLimit int `mapstructure:"default_page_limit"` // 単語一覧の1ページ件数
}

type LookupConfig struct {
	DictionaryURL string        `mapstructure:"dictionary_url"`
	TranslateURL  string        `mapstructure:"translate_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Config struct {
	Database struct {
		URL         string `mapstructure:"url"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	} `mapstructure:"jwt"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Lookup LookupConfig `mapstructure:"lookup"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

var Cfg Config

// ErrMissingJWTSecret は認証が有効なのにJWTの署名鍵が未設定のときに返ります
var ErrMissingJWTSecret = errors.New("jwt.secret_key (JWT_SECRET) must be set when auth is enabled")

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	// APP_SERVER_PORT のように接頭辞付きの環境変数で上書きできる
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("jwt.secret_key", "JWT_SECRET")
	v.BindEnv("redis.addr", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// 未設定なら認証は有効にしておく
	if !v.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}
	if err := applyDefaults(&cfg, os.Getenv("APP_ENV")); err != nil {
		log.Printf("Invalid config: %s\n", err)
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	log.Printf("Quiz: top_window=%d single_pool=%d list_pool=%d", Cfg.Quiz.TopWindow, Cfg.Quiz.SinglePoolSize, Cfg.Quiz.ListPoolSize)

	return nil
}

// applyDefaults は未設定・不正な値をデフォルト値で埋めます。
// 開発用の署名鍵は APP_ENV=dev か認証無効のときだけ使います
func applyDefaults(cfg *Config, appEnv string) error {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.JWT.SecretKey == "" {
		if cfg.Auth.Enabled && strings.ToLower(appEnv) != "dev" {
			return ErrMissingJWTSecret
		}
		log.Println("Warning: JWT secret key is not set, using insecure development default.")
		cfg.JWT.SecretKey = DefaultJWTSecret
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}

	if cfg.Quiz.TopWindow <= 0 {
		cfg.Quiz.TopWindow = DefaultTopWindow
	}
	if cfg.Quiz.SinglePoolSize <= 0 {
		cfg.Quiz.SinglePoolSize = DefaultSinglePoolSize
	}
	if cfg.Quiz.ListPoolSize <= 0 {
		cfg.Quiz.ListPoolSize = DefaultListPoolSize
	}
	if cfg.Quiz.ReviewLimit <= 0 {
		log.Printf("Quiz review limit not set or invalid, using default '%d'", DefaultReviewLimit)
		cfg.Quiz.ReviewLimit = DefaultReviewLimit
	}
	if cfg.Quiz.ListLimit <= 0 {
		cfg.Quiz.ListLimit = DefaultListLimit
	}
	if cfg.Quiz.DefaultPageLimit <= 0 {
		cfg.Quiz.DefaultPageLimit = DefaultPageLimit
	}

	if cfg.Lookup.DictionaryURL == "" {
		cfg.Lookup.DictionaryURL = DefaultDictionaryURL
	}
	if cfg.Lookup.TranslateURL == "" {
		cfg.Lookup.TranslateURL = DefaultTranslateURL
	}
	if cfg.Lookup.Timeout <= 0 {
		cfg.Lookup.Timeout = DefaultLookupTimeout
	}
	if cfg.Lookup.CacheTTL <= 0 {
		cfg.Lookup.CacheTTL = DefaultLookupCacheTTL
	}
	return nil
}
