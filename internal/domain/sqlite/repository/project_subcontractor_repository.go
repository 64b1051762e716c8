package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultProjectSubRepository struct {
	db *gorm.DB
}

func NewProjectSubRepository(db *gorm.DB) *DefaultProjectSubRepository {
	return &DefaultProjectSubRepository{db: db}
}

func (d *DefaultProjectSubRepository) FindAll() ([]*entity.ProjectSubcontractor, error) {
	var subs []*entity.ProjectSubcontractor
	err := d.db.Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (d *DefaultProjectSubRepository) FindByID(id string) (*entity.ProjectSubcontractor, error) {
	var sub entity.ProjectSubcontractor
	err := d.db.First(&sub, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (d *DefaultProjectSubRepository) FindByProject(projectID string) ([]*entity.ProjectSubcontractor, error) {
	var subs []*entity.ProjectSubcontractor
	err := d.db.Where("project_id = ?", projectID).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// FindBySubcontractor returns every project association of the given
// subcontractor company, across all projects.
func (d *DefaultProjectSubRepository) FindBySubcontractor(subcontractorID string) ([]*entity.ProjectSubcontractor, error) {
	var subs []*entity.ProjectSubcontractor
	err := d.db.Where("subcontractor_id = ?", subcontractorID).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (d *DefaultProjectSubRepository) Save(sub *entity.ProjectSubcontractor) error {
	return d.db.Save(sub).Error
}

func (d *DefaultProjectSubRepository) Delete(sub *entity.ProjectSubcontractor) error {
	return d.db.Delete(sub).Error
}
