package repository

import (
	"errors"
	"insuretrack/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultTradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) *DefaultTradeRepository {
	return &DefaultTradeRepository{db: db}
}

func (d *DefaultTradeRepository) FindAll() ([]*entity.Trade, error) {
	var trades []*entity.Trade
	err := d.db.Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

func (d *DefaultTradeRepository) FindByID(id string) (*entity.Trade, error) {
	var trade entity.Trade
	err := d.db.First(&trade, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func (d *DefaultTradeRepository) Save(trade *entity.Trade) error {
	return d.db.Save(trade).Error
}

func (d *DefaultTradeRepository) Delete(trade *entity.Trade) error {
	return d.db.Delete(trade).Error
}
