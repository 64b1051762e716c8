package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCOIRepository struct {
	db *gorm.DB
}

func NewCOIRepository(db *gorm.DB) *DefaultCOIRepository {
	return &DefaultCOIRepository{db: db}
}

func (d *DefaultCOIRepository) FindAll() ([]*entity.GeneratedCOI, error) {
	var cois []*entity.GeneratedCOI
	err := d.db.Find(&cois).Error
	if err != nil {
		return nil, err
	}
	return cois, nil
}

func (d *DefaultCOIRepository) FindByID(id string) (*entity.GeneratedCOI, error) {
	var coi entity.GeneratedCOI
	err := d.db.First(&coi, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &coi, nil
}

func (d *DefaultCOIRepository) FindByAccessToken(token string) (*entity.GeneratedCOI, error) {
	var coi entity.GeneratedCOI
	err := d.db.First(&coi, "access_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &coi, nil
}

func (d *DefaultCOIRepository) FindByProject(projectID string) ([]*entity.GeneratedCOI, error) {
	var cois []*entity.GeneratedCOI
	err := d.db.Where("project_id = ?", projectID).Find(&cois).Error
	if err != nil {
		return nil, err
	}
	return cois, nil
}

func (d *DefaultCOIRepository) FindBySubcontractor(subID string) ([]*entity.GeneratedCOI, error) {
	var cois []*entity.GeneratedCOI
	err := d.db.Where("subcontractor_id = ?", subID).Find(&cois).Error
	if err != nil {
		return nil, err
	}
	return cois, nil
}

func (d *DefaultCOIRepository) Save(coi *entity.GeneratedCOI) error {
	return d.db.Save(coi).Error
}

func (d *DefaultCOIRepository) Delete(coi *entity.GeneratedCOI) error {
	return d.db.Delete(coi).Error
}
