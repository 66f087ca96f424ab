package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"isp-admin/internal/model"
	"isp-admin/pkg/apierror"
)

// ErrInvalidToken is the single failure value for every verification problem
// (bad signature, malformed token, expired claim), so callers cannot tell
// which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (model.AdminRecord, bool, error)
}

type AuthService struct {
	store      AdminStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(store AdminStore, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// HashPassword salts per call, so hashing the same password twice yields
// different (both verifiable) outputs.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword never errors; a malformed hash is simply a mismatch.
func (s *AuthService) ComparePassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate returns the same generic failure for an unknown username and a
// wrong password, to avoid user enumeration.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string) (model.LoginResponse, error) {
	admin, found, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if !found || !s.ComparePassword(password, admin.PasswordHash) {
		return model.LoginResponse{}, apierror.Unauthorized("Authentication failed", "Invalid credentials")
	}

	identity := model.Identity{UserID: admin.ID, Username: admin.Username, Role: admin.Role}
	token, err := s.IssueToken(identity, s.tokenTTL)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token: token,
		User:  model.AuthUser{ID: admin.ID, Username: admin.Username, Role: admin.Role},
	}, nil
}

func (s *AuthService) IssueToken(identity model.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(identity.UserID, 10),
		"username": identity.Username,
		"role":     identity.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) VerifyToken(tokenString string) (*model.Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	identity := &model.Identity{UserID: userID}
	identity.Username, _ = claims["username"].(string)
	identity.Role, _ = claims["role"].(string)

	return identity, nil
}
