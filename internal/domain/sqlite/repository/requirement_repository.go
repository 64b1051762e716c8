package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultRequirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) *DefaultRequirementRepository {
	return &DefaultRequirementRepository{db: db}
}

func (d *DefaultRequirementRepository) FindByProgram(programID string) ([]*entity.SubInsuranceRequirement, error) {
	var reqs []*entity.SubInsuranceRequirement
	err := d.db.Where("program_id = ?", programID).Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (d *DefaultRequirementRepository) FindByID(id string) (*entity.SubInsuranceRequirement, error) {
	var req entity.SubInsuranceRequirement
	err := d.db.First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (d *DefaultRequirementRepository) Save(req *entity.SubInsuranceRequirement) error {
	return d.db.Save(req).Error
}

func (d *DefaultRequirementRepository) Delete(req *entity.SubInsuranceRequirement) error {
	return d.db.Delete(req).Error
}

// FindStateRequirements returns state-mandated coverage rows for the
// given two-letter state code.
func (d *DefaultRequirementRepository) FindStateRequirements(stateCode string) ([]*entity.StateRequirement, error) {
	var reqs []*entity.StateRequirement
	err := d.db.Where("state_code = ?", stateCode).Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
