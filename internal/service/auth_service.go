package service

import (
	"context"
	"time"

	"kyc-verification-be/internal/config"
	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// IAuthService authenticates the review operator. Operator identity comes
// from configuration rather than a user table: the engine has exactly one
// privileged role and no self-service signup.
type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) IAuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.OperatorEmail == "" || s.cfg.OperatorPasswordHash == "" {
		return nil, serverutils.NewUnauthorized("operator login is not configured")
	}

	if req.Email != s.cfg.OperatorEmail {
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.OperatorPasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}

	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"operator_id": s.cfg.OperatorEmail,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}
