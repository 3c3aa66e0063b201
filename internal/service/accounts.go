package service

import (
	"errors"
	"fmt"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/security"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountService coordinates the stores and the mailer for registration,
// activation and password recovery.
type AccountService struct {
	db     *gorm.DB
	users  *store.UserStore
	tokens *store.TokenStore
	argon  *security.ArgonHash
	mail   Mailer

	domain         string
	frontendDomain string
}

func NewAccountService(db *gorm.DB, users *store.UserStore, tokens *store.TokenStore, argon *security.ArgonHash, mail Mailer) *AccountService {
	return &AccountService{
		db:             db,
		users:          users,
		tokens:         tokens,
		argon:          argon,
		mail:           mail,
		domain:         viper.GetString("host.domain"),
		frontendDomain: viper.GetString("host.frontend_domain"),
	}
}

func (s *AccountService) activationLink(token string) string {
	return fmt.Sprintf("%v/v1/user/activate?token=%v", s.domain, token)
}

func (s *AccountService) resetLink(token string) string {
	return fmt.Sprintf("%v/reset_password?token=%v", s.frontendDomain, token)
}

// Register creates the user and its first confirmation in one transaction,
// then attempts delivery. A failed delivery removes both again so no
// unconfirmable account is left behind.
func (s *AccountService) Register(name, username, email, password string) error {
	// Fast-path duplicate checks. The unique indexes still decide under
	// concurrency, Create reports the loser.
	if _, err := s.users.FindByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	var confirmation *model.Confirmation

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(user); err != nil {
			return err
		}

		c, err := s.tokens.WithTx(tx).IssueConfirmation(user.ID)
		if err != nil {
			return err
		}

		confirmation = c
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			return ErrUsernameTaken
		case errors.Is(err, store.ErrEmailTaken):
			return ErrEmailTaken
		}
		return err
	}

	if err := s.mail.SendActivation(user.Name, user.Email, s.activationLink(confirmation.Token)); err != nil {
		zap.L().Error("Activation email failed, rolling back registration",
			zap.String("username", username), zap.Error(err))

		if dbErr := s.users.Delete(user.ID); dbErr != nil {
			zap.L().Error("Registration rollback failed", zap.Uint("user_id", user.ID), zap.Error(dbErr))
		}

		return err
	}

	return nil
}

// Activate consumes a confirmation token. The three failure modes stay
// distinct: an unknown token, an expired one and one that was already
// consumed each get their own answer.
func (s *AccountService) Activate(token string) error {
	c, err := s.tokens.FindConfirmation(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		return err
	}

	// Already-confirmed wins over expired so retries of a consumed link
	// report a clear status instead of a misleading expiry.
	if c.Confirmed {
		return ErrAlreadyConfirmed
	}

	if c.Expired() {
		return ErrTokenExpired
	}

	if err := s.tokens.Confirm(c); err != nil {
		if errors.Is(err, store.ErrAlreadyConfirmed) {
			return ErrAlreadyConfirmed
		}
		return err
	}

	return nil
}

// ResendActivation force-expires the outstanding confirmation, issues a new
// one and mails it. Unlike registration a delivery failure keeps the fresh
// token around; the link may still reach the user out-of-band.
func (s *AccountService) ResendActivation(username string) error {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	last, err := s.tokens.LastConfirmation(user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if last != nil && last.Confirmed {
		return ErrAlreadyConfirmed
	}

	c, err := s.tokens.ReissueConfirmation(last, user.ID)
	if err != nil {
		return err
	}

	return s.mail.SendActivation(user.Name, user.Email, s.activationLink(c.Token))
}

// RequestPasswordReset issues a reset token for a confirmed account,
// superseding any pending one, and mails the link. The token is returned so
// the handler can echo it for dev and testing convenience.
func (s *AccountService) RequestPasswordReset(email string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	activated, err := s.tokens.HasConfirmed(user.ID)
	if err != nil {
		return "", err
	}
	if !activated {
		return "", ErrInactiveAccount
	}

	reset, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", err
	}

	if err := s.mail.SendPasswordReset(user.Name, user.Email, s.resetLink(reset.Token)); err != nil {
		// The token stays valid; support can still hand the link out.
		return reset.Token, err
	}

	return reset.Token, nil
}

// CompletePasswordReset stores the new password hash and deletes the
// consumed reset row in one transaction.
func (s *AccountService) CompletePasswordReset(token, newPassword string) error {
	reset, err := s.tokens.FindReset(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		return err
	}

	if reset.Expired() {
		return ErrTokenExpired
	}

	user, err := s.users.FindByID(reset.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := s.argon.GenerateFromPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).UpdatePassword(user.ID, hash); err != nil {
			return err
		}

		return s.tokens.WithTx(tx).ConsumeReset(reset)
	})
}

// ChangePassword is the authenticated flavor; it demands the old password
// before accepting a new one.
func (s *AccountService) ChangePassword(username, oldPassword, newPassword string) error {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := s.argon.VerifyPasswd(oldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectOldPassword
	}

	hash, err := s.argon.GenerateFromPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(user.ID, hash)
}

// ConfirmationStatus returns an account's full confirmation history, used
// by the operator debug endpoint.
func (s *AccountService) ConfirmationStatus(username string) (*model.User, []model.Confirmation, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	cs, err := s.tokens.Confirmations(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, cs, nil
}
