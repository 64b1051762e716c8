package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultBrokerRepository struct {
	db *gorm.DB
}

func NewBrokerRepository(db *gorm.DB) *DefaultBrokerRepository {
	return &DefaultBrokerRepository{db: db}
}

func (d *DefaultBrokerRepository) FindAll() ([]*entity.Broker, error) {
	var brokers []*entity.Broker
	err := d.db.Find(&brokers).Error
	if err != nil {
		return nil, err
	}
	return brokers, nil
}

func (d *DefaultBrokerRepository) FindByID(id string) (*entity.Broker, error) {
	var broker entity.Broker
	err := d.db.First(&broker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &broker, nil
}

func (d *DefaultBrokerRepository) Save(broker *entity.Broker) error {
	return d.db.Save(broker).Error
}

func (d *DefaultBrokerRepository) Delete(broker *entity.Broker) error {
	return d.db.Delete(broker).Error
}
