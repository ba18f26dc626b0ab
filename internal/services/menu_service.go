package services

import (
	"canteen/internal/models"
	"canteen/internal/repository"
)

type MenuService interface {
	CreateItem(item *models.MenuItem) error
	GetItem(id uint) (*models.MenuItem, error)
	GetAllItems() ([]models.MenuItem, error)
	UpdateItem(item *models.MenuItem) error
	DeleteItem(id uint) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) CreateItem(item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.menuRepo.Create(item)
}

func (s *menuService) GetItem(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "menu item")
	}
	return item, nil
}

func (s *menuService) GetAllItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

func (s *menuService) UpdateItem(item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if _, err := s.menuRepo.GetByID(item.ID); err != nil {
		return asNotFound(err, "menu item")
	}
	return s.menuRepo.Update(item)
}

func (s *menuService) DeleteItem(id uint) error {
	if _, err := s.menuRepo.GetByID(id); err != nil {
		return asNotFound(err, "menu item")
	}
	return s.menuRepo.Delete(id)
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" || item.Description == "" {
		return validationErrorf("name and description are required")
	}
	if item.Price < 0 {
		return validationErrorf("price must be non-negative")
	}
	if !models.ValidCategory(item.Category) {
		return validationErrorf("unknown category %q", item.Category)
	}
	if item.StockQuantity < 0 {
		return validationErrorf("stock quantity must be non-negative")
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
		return validationErrorf("discount percent must be between 0 and 100")
	}
	return nil
}
