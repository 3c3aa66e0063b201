package security

import (
	"errors"
	"fmt"
	"time"

	"myannime/catalog-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserAccessTTL  = 3 * time.Hour
	AdminAccessTTL = time.Hour

	// Refresh tokens are long-lived. Claims are recomputed on every
	// refresh so a stale role inside one is harmless.
	RefreshTTL = 30 * 24 * time.Hour

	useAccess  = "access"
	useRefresh = "refresh"

	AcctUser  = "user"
	AcctAdmin = "admin"
)

var ErrInvalidToken = errors.New("session token invalid")

// SessionClaims is what a session token may assert about its bearer.
// The admin fields are only embedded for admins above the lowest tier;
// everyone else carries a bare token, which downstream checks must treat
// the same as a token with the lowest role.
type SessionClaims struct {
	jwt.RegisteredClaims
	Use     string     `json:"use"`
	Acct    string     `json:"acct,omitempty"`
	AdminID uint       `json:"admin_id,omitempty"`
	Name    string     `json:"name,omitempty"`
	Role    model.Role `json:"role,omitempty"`
}

// Elevated reports whether the token asserts any privilege at all.
func (c *SessionClaims) Elevated() bool {
	return c.Role.Elevated()
}

// TokenIssuer exclusively owns session token signing. Nothing else in the
// application holds the secret.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// MintAccess signs an access token for subject. admin is nil for regular
// users and for admins whose role grants nothing beyond membership.
func (i *TokenIssuer) MintAccess(subject string, ttl time.Duration, admin *model.Admin) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Use: useAccess,
	}

	if admin != nil && admin.Role.Elevated() {
		claims.AdminID = admin.ID
		claims.Name = admin.Name
		claims.Role = admin.Role
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// MintRefresh signs a refresh token. acct records which account table the
// subject lives in so Refresh can re-resolve it later; it grants nothing.
func (i *TokenIssuer) MintRefresh(subject, acct string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTTL)),
		},
		Use:  useRefresh,
		Acct: acct,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ParseAccess validates signature and expiry and rejects refresh tokens
// presented as access tokens.
func (i *TokenIssuer) ParseAccess(token string) (*SessionClaims, error) {
	return i.parse(token, useAccess)
}

func (i *TokenIssuer) ParseRefresh(token string) (*SessionClaims, error) {
	return i.parse(token, useRefresh)
}

func (i *TokenIssuer) parse(token, use string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Use != use {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
