// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "VocabQuiz"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultJWTSecret      = "dev-only-insecure-secret"
	DefaultAccessTokenTTL = 7 * 24 * time.Hour

	DefaultTopWindow      = 15
	DefaultSinglePoolSize = 50
	DefaultListPoolSize   = 100
	DefaultReviewLimit    = 8
	DefaultListLimit      = 10
	DefaultPageLimit      = 20
)

// 外部辞書・翻訳サービス
const (
	DefaultDictionaryURL  = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTranslateURL   = "https://api.mymemory.translated.net/get"
	DefaultLookupTimeout  = 5 * time.Second
	DefaultLookupCacheTTL = 24 * time.Hour
)
