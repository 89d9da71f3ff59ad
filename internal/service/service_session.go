// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

// Sentinel errors used when parsing the "Authorization" HTTP header.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request
	// does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two
	// space-separated parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains
	// the expected scheme prefix but the token value itself is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// sessionClaims is the JWT claim set expected on session tokens issued by
// the external auth provider.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// jwtSessionProvider is the default [SessionProvider]: it validates
// HMAC-signed bearer tokens issued by the external auth provider. The core
// never issues tokens itself.
type jwtSessionProvider struct {
	signKey []byte
	issuer  string
	logger  *logger.Logger
}

// NewJWTSessionProvider constructs a [SessionProvider] that verifies bearer
// JWTs with the configured signing key and issuer.
//
// The returned provider is safe for concurrent use; all state is read-only
// after construction.
func NewJWTSessionProvider(cfg config.Auth, logger *logger.Logger) SessionProvider {
	return &jwtSessionProvider{
		signKey: []byte(cfg.TokenSignKey),
		issuer:  cfg.TokenIssuer,
		logger:  logger,
	}
}

func (p *jwtSessionProvider) Validate(ctx context.Context, headers http.Header) (models.Session, error) {
	log := logger.FromContext(ctx)

	if len(p.signKey) == 0 {
		// provider not configured: every request is unauthenticated
		return models.Session{}, apperr.Unauthorized("session provider is not configured")
	}

	tokenString, err := tokenFromAuthHeader(headers.Get("Authorization"))
	if err != nil {
		log.Warn().Err(err).Msg("missing or malformed Authorization header")
		return models.Session{}, apperr.Unauthorized("Unauthorized")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected token signing method")
			}
			return p.signKey, nil
		},
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		log.Warn().Err(err).Msg("invalid session token")
		return models.Session{}, apperr.Unauthorized("Unauthorized")
	}

	if claims.Subject == "" {
		return models.Session{}, apperr.Unauthorized("Unauthorized")
	}

	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}

	return models.Session{UserID: claims.Subject, Role: role}, nil
}

// tokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: <scheme> <token>
func tokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
