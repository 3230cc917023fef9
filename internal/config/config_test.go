package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_applyDefaults_JWTSecret(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		secret     string
		appEnv     string
		wantErr    error
		wantSecret string
	}{
		{name: "正常系: 設定済みの鍵はそのまま", enabled: true, secret: "s3cret", wantSecret: "s3cret"},
		{name: "正常系: 開発環境なら開発用の鍵", enabled: true, appEnv: "dev", wantSecret: DefaultJWTSecret},
		{name: "正常系: 認証無効なら開発用の鍵", enabled: false, wantSecret: DefaultJWTSecret},
		{name: "異常系: 本番で鍵が未設定", enabled: true, appEnv: "prod", wantErr: ErrMissingJWTSecret},
		{name: "異常系: APP_ENV未設定で鍵が未設定", enabled: true, wantErr: ErrMissingJWTSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Auth.Enabled = tt.enabled
			cfg.JWT.SecretKey = tt.secret

			err := applyDefaults(&cfg, tt.appEnv)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, cfg.JWT.SecretKey)
		})
	}
}

func Test_applyDefaults_Quiz(t *testing.T) {
	var cfg Config
	cfg.JWT.SecretKey = "s3cret"

	require.NoError(t, applyDefaults(&cfg, ""))

	assert.Equal(t, DefaultTopWindow, cfg.Quiz.TopWindow)
	assert.Equal(t, DefaultSinglePoolSize, cfg.Quiz.SinglePoolSize)
	assert.Equal(t, DefaultListPoolSize, cfg.Quiz.ListPoolSize)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("auth:\n  enabled: true\n"), 0o600))
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_JWT_SECRET_KEY", "")

	assert.ErrorIs(t, LoadConfig(dir), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "from-env")
	require.NoError(t, LoadConfig(dir))
	assert.Equal(t, "from-env", Cfg.JWT.SecretKey)
}
