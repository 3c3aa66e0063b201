package internal

import (
	"myannime/catalog-api/aws"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/security"

	"gorm.io/gorm"
)

// Deps carries everything the handlers need. Built once in app.NewRouter.
type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Issuer *security.TokenIssuer
	S3     *aws.S3Client

	Users  *store.UserStore
	Admins *store.AdminStore
	Tokens *store.TokenStore

	Auth     *service.AuthService
	Accounts *service.AccountService
}
