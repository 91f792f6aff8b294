package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/config"
)

// Token-type discriminator carried in the claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Manager signs and verifies bearer tokens. The signing secret is injected at
// construction; there is no package-level key state.
type Manager struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a token Manager from the application configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken creates a signed access token for a user.
func (m *Manager) IssueAccessToken(userID string) (string, error) {
	return m.issue(userID, TokenTypeAccess, m.accessTTL)
}

// IssueRefreshToken creates a signed refresh token for a user. No endpoint
// exposes a refresh flow yet; issuance exists for clients that store both.
func (m *Manager) IssueRefreshToken(userID string) (string, error) {
	return m.issue(userID, TokenTypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and verifies a token string, distinguishing an expired
// token from any other invalid one.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.TokenExpired()
		}
		return nil, apperr.InvalidToken()
	}
	if !token.Valid {
		return nil, apperr.InvalidToken()
	}
	return claims, nil
}
