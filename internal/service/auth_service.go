package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
)

type credentialRepository interface {
	Get(ctx context.Context) (*models.AdminCredential, error)
	Save(ctx context.Context, cred *models.AdminCredential) error
}

// AuthConfig defines configuration for the shared-credential login.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
}

// AuthService guards the admin surface with a single shared credential
// pair. There is no user table.
type AuthService struct {
	repo      credentialRepository
	validator *validator.Validate
	logger    *zap.Logger
	cfg       AuthConfig
}

// NewAuthService constructs the auth service.
func NewAuthService(repo credentialRepository, validate *validator.Validate, logger *zap.Logger, cfg AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, cfg: cfg}
}

// NeedsSetup reports whether no credential has been stored yet.
func (s *AuthService) NeedsSetup(ctx context.Context) (bool, error) {
	_, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read credentials")
	}
	return false, nil
}

// Setup stores the first-run credential. It refuses to overwrite an
// existing one.
func (s *AuthService) Setup(ctx context.Context, req models.SetupRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setup payload")
	}
	needsSetup, err := s.NeedsSetup(ctx)
	if err != nil {
		return err
	}
	if !needsSetup {
		return appErrors.Clone(appErrors.ErrConflict, "credentials already configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	cred := &models.AdminCredential{Username: strings.TrimSpace(req.Username), PasswordHash: string(hash)}
	if err := s.repo.Save(ctx, cred); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store credentials")
	}
	return nil
}

// Login verifies the shared credential and issues a session token.
// Username comparison is case-insensitive; the password is not.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	cred, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "no credentials configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read credentials")
	}

	if !strings.EqualFold(strings.TrimSpace(req.Username), cred.Username) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.Expiration)
	claims := &models.JWTClaims{
		Username: cred.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and checks a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
