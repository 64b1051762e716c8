package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *DefaultProjectRepository {
	return &DefaultProjectRepository{db: db}
}

func (d *DefaultProjectRepository) FindAll() ([]*entity.Project, error) {
	var projects []*entity.Project
	err := d.db.Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (d *DefaultProjectRepository) FindByID(id string) (*entity.Project, error) {
	var project entity.Project
	err := d.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (d *DefaultProjectRepository) FindByGC(gcID string) ([]*entity.Project, error) {
	var projects []*entity.Project
	err := d.db.Where("gc_id = ?", gcID).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (d *DefaultProjectRepository) Save(project *entity.Project) error {
	return d.db.Save(project).Error
}

func (d *DefaultProjectRepository) Delete(project *entity.Project) error {
	return d.db.Delete(project).Error
}
