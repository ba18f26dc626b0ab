package repository

import (
	"canteen/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetAll() ([]models.MenuItem, error)
	Update(item *models.MenuItem) error
	Delete(id uint) error
	DecrementStock(id uint, qty int) (bool, error)
	RestoreStock(id uint, qty int) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetAll() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Order("category, name").Find(&items).Error
	return items, err
}

func (r *menuRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

// DecrementStock performs a conditional decrement: stock is reduced only if
// the current quantity covers the request, so stock can never go negative and
// concurrent checkouts cannot lose updates. Returns false when the condition
// failed (item missing or insufficient stock).
func (r *menuRepository) DecrementStock(id uint, qty int) (bool, error) {
	result := r.db.Model(&models.MenuItem{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreStock is the compensating action for DecrementStock when a later
// step of order placement fails.
func (r *menuRepository) RestoreStock(id uint, qty int) error {
	return r.db.Model(&models.MenuItem{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error
}
