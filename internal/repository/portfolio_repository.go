package repository

import (
	"errors"
	"fmt"

	"auraweb/internal/models"

	"gorm.io/gorm"
)

type PortfolioRepository interface {
	Create(item *models.PortfolioItem) error
	GetByID(id uint) (*models.PortfolioItem, error)
	GetAll() ([]models.PortfolioItem, error)
	Update(item *models.PortfolioItem) error
	Delete(id uint) error
}

type portfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(item *models.PortfolioItem) error {
	return r.db.Create(item).Error
}

func (r *portfolioRepository) GetByID(id uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("portfolio item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepository) GetAll() ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *portfolioRepository) Update(item *models.PortfolioItem) error {
	return r.db.Save(item).Error
}

func (r *portfolioRepository) Delete(id uint) error {
	result := r.db.Delete(&models.PortfolioItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("portfolio item %d: %w", id, ErrNotFound)
	}
	return nil
}
