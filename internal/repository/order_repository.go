package repository

import (
	"canteen/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id uint, status, otp string) error
	UpdateOTP(id uint, otp string) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateStatus writes status and otp together so an order is never observable
// with a new status and a stale code.
func (r *orderRepository) UpdateStatus(id uint, status, otp string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "otp": otp}).Error
}

func (r *orderRepository) UpdateOTP(id uint, otp string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("otp", otp).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Select("Items").Delete(&models.Order{ID: id}).Error
}
