package store

import (
	"errors"

	"myannime/catalog-api/internal/model"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a copy of the store bound to tx so multi-step sequences
// can run inside a single transaction.
func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx}
}

func (s *UserStore) FindByUsername(username string) (*model.User, error) {
	var u model.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (s *UserStore) FindByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (s *UserStore) FindByID(id uint) (*model.User, error) {
	var u model.User
	err := s.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

// Create inserts u and reports which unique constraint broke when the insert
// is rejected. The database constraint is the race-breaker here, not the
// existence checks callers may have done beforehand.
func (s *UserStore) Create(u *model.User) error {
	err := s.db.Create(u).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var count int64
		if s.db.Model(&model.User{}).Where("username = ?", u.Username).Count(&count); count > 0 {
			return ErrUsernameTaken
		}
		return ErrEmailTaken
	}

	return err
}

func (s *UserStore) UpdatePassword(userID uint, hash string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).
		Error
}

// Delete removes the user together with its confirmations and any pending
// password reset in one transaction.
func (s *UserStore) Delete(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Confirmation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.PasswordReset{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, userID).Error
	})
}

func (s *UserStore) SaveAnime(u *model.User, a *model.Anime) error {
	return s.db.Model(u).Association("SavedAnimes").Append(a)
}

func (s *UserStore) RemoveAnime(u *model.User, a *model.Anime) error {
	return s.db.Model(u).Association("SavedAnimes").Delete(a)
}

func (s *UserStore) SavedAnimes(u *model.User) ([]model.Anime, error) {
	var animes []model.Anime
	err := s.db.Model(u).Association("SavedAnimes").Find(&animes)
	return animes, err
}
