package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
	"github.com/ecomama/marketplace/internal/core/service"
)

// JWTSessions resolves the caller from a bearer token issued at login.
// Revoked tokens are rejected.
type JWTSessions struct {
	secret  []byte
	revoker ports.TokenRevoker
	log     zerolog.Logger
}

func NewJWTSessions(jwtSecret string, revoker ports.TokenRevoker, log zerolog.Logger) *JWTSessions {
	return &JWTSessions{secret: []byte(jwtSecret), revoker: revoker, log: log}
}

// Resolve returns a nil session when no Authorization header is sent, and an
// Unauthorized error when the header or token is invalid.
func (s *JWTSessions) Resolve(c echo.Context) (*domain.Session, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, domain.Unauthorized("invalid authorization header")
	}

	claims := &service.SessionClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Unauthorized("token expired")
		}
		return nil, domain.Unauthorized("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, domain.Unauthorized("invalid token")
	}

	revoked, err := s.revoker.IsRevoked(c.Request().Context(), claims.ID)
	if err != nil {
		s.log.Error().Err(err).Str("token_id", claims.ID).Msg("revocation check failed")
		return nil, err
	}
	if revoked {
		return nil, domain.Unauthorized("token revoked")
	}

	session := &domain.Session{
		User:    domain.SessionUser{ID: claims.Subject, Role: claims.Role},
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
