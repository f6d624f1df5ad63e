package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tmendes/go-smartcity-services/config"
	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

// Claims is the shared claim shape for both token kinds. Refresh tokens
// carry no role: the role is re-read from the user record on rotation.
// Every token gets a fresh jti, so two issuances within the same second
// still produce distinct strings and rotation always changes the stored
// value.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer produces and consumes the two token kinds. Access and refresh
// tokens share the claim shape but are signed with distinct secrets, so a
// refresh token can never be replayed as an access token. The issuer holds
// no mutable state; it is initialized once from config at startup.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string

	now func() time.Time // overridable in tests
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.SecretKey),
		refreshSecret: []byte(cfg.RefreshSecretKey),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		now:           time.Now,
	}
}

// IssueAccessToken signs a short-lived token asserting {subject=username, role}.
func (t *TokenIssuer) IssueAccessToken(user *types.User) (string, error) {
	now := t.now()
	claims := &Claims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken signs a long-lived token asserting only the subject.
func (t *TokenIssuer) IssueRefreshToken(user *types.User) (string, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies an access token end to end: signature, expiry,
// issuer and audience.
func (t *TokenIssuer) ParseAccessToken(tokenString string) (*Claims, error) {
	return t.parse(tokenString, t.accessSecret)
}

// ParseSubject extracts the subject from a refresh token, verifying the
// signature but nothing about the named user.
func (t *TokenIssuer) ParseSubject(tokenString string) (string, error) {
	claims, err := t.parse(tokenString, t.refreshSecret)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", api.ErrMalformedToken)
	}
	return claims.Subject, nil
}

// IsValid reports whether a refresh token verifies, is unexpired and names
// the supplied identity as subject.
func (t *TokenIssuer) IsValid(tokenString string, user *types.User) bool {
	claims, err := t.parse(tokenString, t.refreshSecret)
	if err != nil {
		return false
	}
	return claims.Subject == user.Username
}

// ExtractRole reads the role claim without re-verifying the signature.
// Callers must have validated the token first.
func (t *TokenIssuer) ExtractRole(tokenString string) string {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	return claims.Role
}

func (t *TokenIssuer) parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithTimeFunc(t.now),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", api.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", api.ErrMalformedToken, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token not valid", api.ErrMalformedToken)
	}
	if t.audience != "" && !api.VerifyAudience(claims.Audience, t.audience) {
		return nil, fmt.Errorf("%w: audience mismatch", api.ErrMalformedToken)
	}
	return claims, nil
}
