package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (d *DefaultUserRepository) FindAll() ([]*entity.User, error) {
	var users []*entity.User
	err := d.db.Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := d.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DefaultUserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := d.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveBySub resolves the Cognito subject UUID to the local user
// row, skipping suspended or deactivated accounts.
func (d *DefaultUserRepository) FindActiveBySub(sub string) (*entity.User, error) {
	var user entity.User
	err := d.db.First(&user, "sub_uuid = ? AND active = ?", sub, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DefaultUserRepository) Save(user *entity.User) error {
	return d.db.Save(user).Error
}

func (d *DefaultUserRepository) Delete(user *entity.User) error {
	return d.db.Delete(user).Error
}
