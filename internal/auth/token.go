package auth

import (
	"strings"
	"time"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// DefaultTokenTTL: срок жизни токена сессии
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims: содержимое токена: {user_id, username, iat, exp}
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет HS256-токены, подписанные общим секретом процесса
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type TokenOption func(*TokenService)

// WithClock подменяет источник времени (для тестов истечения срока)
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		// срок действия проверяем сами, своими часами
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

// Verify проверяет алгоритм, подпись и срок действия
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims, err := s.decode(token)
	if err != nil {
		return nil, err
	}
	if !claims.VerifyExpiresAt(s.now(), true) {
		return nil, errors.Wrap(apperr.ErrInvalidToken, "token expired")
	}
	return claims, nil
}

// DecodeIgnoringExpiry проверяет подпись, но пропускает истекшие токены (нужно для refresh)
func (s *TokenService) DecodeIgnoringExpiry(token string) (*Claims, error) {
	return s.decode(token)
}

func (s *TokenService) decode(tokenStr string) (*Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, errors.Wrap(apperr.ErrInvalidToken, "empty token")
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrapf(apperr.ErrInvalidToken, "parse: %v", err)
	}
	if !token.Valid {
		return nil, errors.Wrap(apperr.ErrInvalidToken, "token is not valid")
	}
	if claims.UserID == 0 {
		return nil, errors.Wrap(apperr.ErrInvalidToken, "no user_id claim")
	}
	return claims, nil
}
