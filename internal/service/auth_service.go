package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// Authenticate はトークンを検証し、ユーザーが存在すればIDを返します (JWTAuthMiddleware用)
	Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// AuthConfig はトークン発行の設定です
type AuthConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      AuthConfig
	now      func() time.Time
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg AuthConfig) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

var errInvalidCredentials = model.NewAppError("AUTHENTICATION_FAILED", "Invalid username or password", "", model.ErrInvalidInput)

// Register は新しいユーザーを登録し、トークンを発行します
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)
	username := strings.TrimSpace(req.Username)

	if n := len([]rune(username)); n < 3 || n > 20 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Username must be 3-20 characters", "username", model.ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Password must be at least 6 characters", "password", model.ErrInvalidInput)
	}

	_, err := s.userRepo.FindByUsername(ctx, s.db, username)
	if err == nil {
		logger.Warn("Username already exists", "username", username)
		return nil, model.NewAppError("DUPLICATE_USERNAME", "Username already exists", "username", model.ErrConflict)
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check username existence", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during registration", "", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during registration", "", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		// 同時登録で一意制約に引っかかった場合
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("DUPLICATE_USERNAME", "Username already exists", "username", model.ErrConflict)
		}
		logger.Error("Failed to create user in DB", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during registration", "", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during registration", "", err)
	}

	logger.Info("User registered", "user_id", user.ID.String())
	return &model.AuthResponse{Success: true, Message: "Registration successful", Token: token, User: user}, nil
}

// Login はユーザーを認証し、最終ログイン日時を更新してJWTを返します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("username", req.Username)

	user, err := s.userRepo.FindByUsername(ctx, s.db, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, errInvalidCredentials
		}
		logger.Error("Login failed: db error on FindByUsername", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during login", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID.String())
		return nil, errInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, s.db, user.ID, now); err != nil {
		logger.Error("Failed to update last login", "error", err, "user_id", user.ID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during login", "", err)
	}
	user.LastLogin = &now

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error during login", "", err)
	}

	logger.Info("Login successful", "user_id", user.ID.String())
	return &model.AuthResponse{Success: true, Message: "Login successful", Token: token, User: user}, nil
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found", "", model.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	userID, err := s.parseToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: user %s no longer exists", model.ErrUnauthorized, userID)
		}
		return uuid.Nil, err
	}
	return userID, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := s.now()
	claims := model.JWTCustomClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// parseToken は署名アルゴリズム (HS256) と有効期限を検証して subject を返します
func (s *authService) parseToken(tokenString string) (uuid.UUID, error) {
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	if !token.Valid {
		return uuid.Nil, model.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid subject", model.ErrUnauthorized)
	}
	return userID, nil
}
