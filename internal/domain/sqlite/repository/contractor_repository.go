package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *DefaultContractorRepository {
	return &DefaultContractorRepository{db: db}
}

func (d *DefaultContractorRepository) FindAll() ([]*entity.Contractor, error) {
	var contractors []*entity.Contractor
	err := d.db.Find(&contractors).Error
	if err != nil {
		return nil, err
	}
	return contractors, nil
}

func (d *DefaultContractorRepository) FindByID(id string) (*entity.Contractor, error) {
	var contractor entity.Contractor
	err := d.db.First(&contractor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &contractor, nil
}

func (d *DefaultContractorRepository) FindByType(ctype entity.ContractorType) ([]*entity.Contractor, error) {
	var contractors []*entity.Contractor
	err := d.db.Where("contractor_type = ?", ctype).Find(&contractors).Error
	if err != nil {
		return nil, err
	}
	return contractors, nil
}

func (d *DefaultContractorRepository) FindByEmail(email string) (*entity.Contractor, error) {
	var contractor entity.Contractor
	err := d.db.First(&contractor, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &contractor, nil
}

func (d *DefaultContractorRepository) Save(contractor *entity.Contractor) error {
	return d.db.Save(contractor).Error
}

func (d *DefaultContractorRepository) Delete(contractor *entity.Contractor) error {
	return d.db.Delete(contractor).Error
}
