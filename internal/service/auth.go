package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/simple-notes/backend/internal/config"
	"github.com/simple-notes/backend/internal/db"
	"github.com/simple-notes/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 128
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrTokenExpired  = errors.New("token expired")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

type UserRepo interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// AuthService issues and verifies stateless HS256 access tokens. A token
// is valid iff its signature checks out and it has not expired; there is
// no server-side session state and no revocation.
type AuthService struct {
	repo      UserRepo
	jwtSecret []byte
	accessTTL time.Duration
}

type authClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewAuthService(repo UserRepo, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil || accessTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
	}, nil
}

func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*model.AuthUser, string, int64, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, "", 0, err
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", 0, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", 0, err
	}

	user, err := s.repo.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", 0, ErrConflict
		}
		return nil, "", 0, err
	}

	token, expiresIn, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", 0, err
	}
	return &model.AuthUser{ID: user.ID, Username: user.Username}, token, expiresIn, nil
}

func (s *AuthService) SignIn(ctx context.Context, username, password string) (*model.AuthUser, string, int64, error) {
	if err := validateCredentials(username, password); err != nil {
		// Do not reveal whether the username or the password was wrong.
		return nil, "", 0, ErrUnauthorized
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", 0, ErrUnauthorized
		}
		return nil, "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", 0, ErrUnauthorized
	}

	token, expiresIn, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", 0, err
	}
	return &model.AuthUser{ID: user.ID, Username: user.Username}, token, expiresIn, nil
}

func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthorized
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{
		ID:       userID,
		Username: claims.Username,
	}, nil
}

func (s *AuthService) generateAccessToken(user *model.User) (string, int64, error) {
	now := time.Now()
	claims := authClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func validateCredentials(username, password string) error {
	username = strings.TrimSpace(username)

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
