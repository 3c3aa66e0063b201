package service

import (
	"errors"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/security"

	"go.uber.org/zap"
)

// Session is what a successful login hands back to the client.
type Session struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	ExpiresIn    int64  `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService verifies credentials and is the only path to a signed
// session token pair.
type AuthService struct {
	users  *store.UserStore
	admins *store.AdminStore
	tokens *store.TokenStore
	argon  *security.ArgonHash
	issuer *security.TokenIssuer
}

func NewAuthService(users *store.UserStore, admins *store.AdminStore, tokens *store.TokenStore, argon *security.ArgonHash, issuer *security.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		admins: admins,
		tokens: tokens,
		argon:  argon,
		issuer: issuer,
	}
}

// Login authenticates a regular user. An unknown username and a wrong
// password both come back as ErrInvalidCredentials; an unactivated account
// is a distinct outcome so the client can offer a resend.
func (s *AuthService) Login(username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	activated, err := s.tokens.HasConfirmed(user.ID)
	if err != nil {
		return nil, err
	}
	if !activated {
		return nil, ErrAccountNotActivated
	}

	access, err := s.issuer.MintAccess(user.Username, security.UserAccessTTL, nil)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issuer.MintRefresh(user.Username, security.AcctUser)
	if err != nil {
		return nil, err
	}

	return &Session{
		Name:         user.Name,
		Username:     user.Username,
		ExpiresIn:    int64(security.UserAccessTTL.Seconds()),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// AdminLogin mirrors Login for operator accounts. There is no activation
// gate; admins are provisioned, not self-registered.
func (s *AuthService) AdminLogin(username, password string) (*Session, error) {
	admin, err := s.admins.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.argon.VerifyPasswd(password, admin.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	access, err := s.issuer.MintAccess(admin.Username, security.AdminAccessTTL, admin)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issuer.MintRefresh(admin.Username, security.AcctAdmin)
	if err != nil {
		return nil, err
	}

	return &Session{
		Name:         admin.Name,
		Username:     admin.Username,
		ExpiresIn:    int64(security.AdminAccessTTL.Seconds()),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh validates a refresh token and mints a fresh access token. The
// subject's account is re-resolved so the new token carries the current
// role, not whatever the refresh token remembers.
func (s *AuthService) Refresh(refreshToken string) (access string, expiresIn int64, err error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return "", 0, err
	}

	switch claims.Acct {
	case security.AcctAdmin:
		admin, err := s.admins.FindByUsername(claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", 0, ErrUserNotFound
			}
			return "", 0, err
		}

		access, err = s.issuer.MintAccess(admin.Username, security.AdminAccessTTL, admin)
		if err != nil {
			return "", 0, err
		}

		return access, int64(security.AdminAccessTTL.Seconds()), nil

	default:
		user, err := s.users.FindByUsername(claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", 0, ErrUserNotFound
			}
			return "", 0, err
		}

		access, err = s.issuer.MintAccess(user.Username, security.UserAccessTTL, nil)
		if err != nil {
			return "", 0, err
		}

		return access, int64(security.UserAccessTTL.Seconds()), nil
	}
}

// VerifyAdminPassword re-checks an admin's password for the profile
// operations that demand it on top of a valid session.
func (s *AuthService) VerifyAdminPassword(admin *model.Admin, password string) bool {
	ok, err := s.argon.VerifyPasswd(password, admin.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify admin password", zap.Error(err))
		return false
	}

	return ok
}
