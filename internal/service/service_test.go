package service

import (
	"fmt"
	"testing"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer records deliveries and can be told to fail.
type fakeMailer struct {
	fail        bool
	activations []string
	resets      []string
}

func (m *fakeMailer) SendActivation(name, email, link string) error {
	if m.fail {
		return fmt.Errorf("%w: relay refused connection", ErrDelivery)
	}

	m.activations = append(m.activations, link)
	return nil
}

func (m *fakeMailer) SendPasswordReset(name, email, link string) error {
	if m.fail {
		return fmt.Errorf("%w: relay refused connection", ErrDelivery)
	}

	m.resets = append(m.resets, link)
	return nil
}

type fixture struct {
	db       *gorm.DB
	users    *store.UserStore
	admins   *store.AdminStore
	tokens   *store.TokenStore
	argon    *security.ArgonHash
	issuer   *security.TokenIssuer
	mail     *fakeMailer
	auth     *AuthService
	accounts *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Confirmation{},
		&model.PasswordReset{},
		&model.Anime{},
		&model.Episode{},
		&model.Genre{},
	)
	require.NoError(t, err)

	f := &fixture{
		db:     db,
		users:  store.NewUserStore(db),
		admins: store.NewAdminStore(db),
		tokens: store.NewTokenStore(db),
		argon:  security.NewArgon(),
		issuer: security.NewTokenIssuer([]byte("test-secret")),
		mail:   &fakeMailer{},
	}

	f.auth = NewAuthService(f.users, f.admins, f.tokens, f.argon, f.issuer)
	f.accounts = NewAccountService(db, f.users, f.tokens, f.argon, f.mail)

	return f
}

func (f *fixture) register(t *testing.T, username, email, password string) *model.User {
	t.Helper()

	require.NoError(t, f.accounts.Register("Test User", username, email, password))

	user, err := f.users.FindByUsername(username)
	require.NoError(t, err)

	return user
}

func (f *fixture) activate(t *testing.T, userID uint) {
	t.Helper()

	last, err := f.tokens.LastConfirmation(userID)
	require.NoError(t, err)
	require.NoError(t, f.accounts.Activate(last.Token))
}

func (f *fixture) seedAdmin(t *testing.T, username, password string, role model.Role) *model.Admin {
	t.Helper()

	hash, err := f.argon.GenerateFromPassword(password)
	require.NoError(t, err)

	admin := &model.Admin{
		Name:         "Test Admin",
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, f.admins.Create(admin))

	return admin
}
