package store

import (
	"errors"

	"myannime/catalog-api/internal/model"

	"gorm.io/gorm"
)

type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

func (s *AdminStore) FindByUsername(username string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.Where("username = ?", username).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (s *AdminStore) FindByID(id uint) (*model.Admin, error) {
	var a model.Admin
	err := s.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (s *AdminStore) Create(a *model.Admin) error {
	err := s.db.Create(a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}

	return nil
}

func (s *AdminStore) Update(a *model.Admin) error {
	return s.db.Save(a).Error
}

func (s *AdminStore) Delete(adminID uint) error {
	return s.db.Delete(&model.Admin{}, adminID).Error
}
