package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *DefaultProgramRepository {
	return &DefaultProgramRepository{db: db}
}

func (d *DefaultProgramRepository) FindAll() ([]*entity.InsuranceProgram, error) {
	var programs []*entity.InsuranceProgram
	err := d.db.Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func (d *DefaultProgramRepository) FindByID(id string) (*entity.InsuranceProgram, error) {
	var program entity.InsuranceProgram
	err := d.db.First(&program, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (d *DefaultProgramRepository) FindByGC(gcID string) ([]*entity.InsuranceProgram, error) {
	var programs []*entity.InsuranceProgram
	err := d.db.Where("gc_id = ?", gcID).Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func (d *DefaultProgramRepository) Save(program *entity.InsuranceProgram) error {
	return d.db.Save(program).Error
}

func (d *DefaultProgramRepository) Delete(program *entity.InsuranceProgram) error {
	return d.db.Delete(program).Error
}
