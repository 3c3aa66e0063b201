// Package db contains things related to the database connection
package db

import (
	"errors"
	"fmt"
	"os"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/pkg/util"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database and migrates the schema. TranslateError
// is on so unique constraint violations surface as gorm.ErrDuplicatedKey
// on both drivers; the stores depend on that.
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	case "sqlite":
		file := viper.GetString("db.file")

		// If running in a docker container don't allow the sqlite file to be
		// created. The host should instead mount it using volumes
		if util.IsRunningInDocker() {
			if _, err := os.Stat(file); err != nil {
				return nil, errors.New("SQLite database file not mounted, please use docker volumes to mount it")
			}
		}

		dialector = sqlite.Open(file)
	default:
		return nil, fmt.Errorf("unknown db driver %q", viper.GetString("db.driver"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Admin{},
		model.Confirmation{},
		model.PasswordReset{},
		model.Anime{},
		model.Episode{},
		model.Genre{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
