package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest はユーザー登録APIのリクエストボディ
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse は登録・ログイン成功時のレスポンス
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
type JWTCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims // 標準クレーム (sub = ユーザーID, exp など)
}
