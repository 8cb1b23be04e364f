package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/errs"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// IssuedToken is returned once, when a token is created. The plain token
// cannot be recovered afterwards.
type IssuedToken struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt *time.Time   `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Identity is the authenticated caller of an API request.
type Identity struct {
	User    *models.User
	TokenID uint
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	IssueToken(ctx context.Context, email, password, deviceName string) (*IssuedToken, error)
	IssueTokenForUser(ctx context.Context, user *models.User, deviceName string) (*IssuedToken, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
	RevokeToken(ctx context.Context, tokenID uint) error
}

type authService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, cfg config.AuthConfig, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func errUnauthenticated() error {
	return errs.Errorf(errs.EUNAUTHORIZED, "Unauthenticated.")
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Errorf(errs.ECONFLICT, "The email has already been taken.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, Password: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, email, password, deviceName string) (*IssuedToken, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.logger.WithField("email", email).Warn("Rejected token request with bad credentials")
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "The provided credentials are incorrect.")
	}
	return s.IssueTokenForUser(ctx, user, deviceName)
}

func (s *authService) IssueTokenForUser(ctx context.Context, user *models.User, deviceName string) (*IssuedToken, error) {
	now := s.now()
	record := &models.PersonalAccessToken{UserID: user.ID, Name: deviceName, CreatedAt: now}
	if s.ttl > 0 {
		expiresAt := now.Add(s.ttl)
		record.ExpiresAt = &expiresAt
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	claims := jwt.RegisteredClaims{
		Issuer:   s.issuer,
		Subject:  strconv.FormatUint(uint64(user.ID), 10),
		ID:       strconv.FormatUint(uint64(record.ID), 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if record.ExpiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*record.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"token_id": record.ID,
		"device":   deviceName,
	}).Info("Access token issued")

	return &IssuedToken{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: record.ExpiresAt,
		User:      user,
	}, nil
}

// Authenticate verifies the signature and then checks that the token has not
// been revoked. Every failure is reported as the same unauthorized error.
func (s *authService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.WithError(err).Debug("Rejected bearer token")
		return nil, errUnauthenticated()
	}

	tokenID, err := strconv.ParseUint(claims.ID, 10, 64)
	if err != nil {
		return nil, errUnauthenticated()
	}

	record, err := s.tokens.FindByID(ctx, uint(tokenID))
	if err != nil {
		return nil, err
	}
	if record == nil || record.User == nil || record.Expired(s.now()) {
		return nil, errUnauthenticated()
	}
	if claims.Subject != strconv.FormatUint(uint64(record.UserID), 10) {
		return nil, errUnauthenticated()
	}

	if err := s.tokens.Touch(ctx, record.ID, s.now()); err != nil {
		// Bookkeeping only; the request is still authenticated.
		s.logger.WithError(err).WithField("token_id", record.ID).Warn("Failed to record token use")
	}

	return &Identity{User: record.User, TokenID: record.ID}, nil
}

func (s *authService) RevokeToken(ctx context.Context, tokenID uint) error {
	if tokenID == 0 {
		return errors.New("revoke token: missing token id")
	}
	if err := s.tokens.Delete(ctx, tokenID); err != nil {
		return err
	}
	s.logger.WithField("token_id", tokenID).Info("Access token revoked")
	return nil
}
