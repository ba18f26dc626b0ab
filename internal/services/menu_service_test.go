package services

import (
	"testing"

	"canteen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemValidation(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())

	valid := func() *models.MenuItem {
		return &models.MenuItem{
			Name:          "Singara",
			Description:   "Crispy pastry with potato filling",
			Price:         10,
			Category:      string(models.CategorySnacks),
			StockQuantity: 100,
		}
	}

	require.NoError(t, svc.CreateItem(valid()))

	tests := []struct {
		name   string
		mutate func(*models.MenuItem)
	}{
		{"missing name", func(m *models.MenuItem) { m.Name = "" }},
		{"negative price", func(m *models.MenuItem) { m.Price = -1 }},
		{"bad category", func(m *models.MenuItem) { m.Category = "Midnight Snacks" }},
		{"negative stock", func(m *models.MenuItem) { m.StockQuantity = -5 }},
		{"discount over 100", func(m *models.MenuItem) { m.DiscountPercent = 150 }},
		{"negative discount", func(m *models.MenuItem) { m.DiscountPercent = -10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.mutate(item)
			assert.Error(t, svc.CreateItem(item))
		})
	}
}

func TestUpdateAndDeleteMissingItem(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())

	err := svc.UpdateItem(&models.MenuItem{
		ID:          42,
		Name:        "Ghost Dish",
		Description: "Not on the menu",
		Price:       5,
		Category:    string(models.CategoryDessert),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteItem(42), ErrNotFound)
}

func TestDiscountedPrice(t *testing.T) {
	item := &models.MenuItem{Price: 120, DiscountPercent: 10}
	assert.InDelta(t, 108.0, item.DiscountedPrice(), 1e-9)

	item.DiscountPercent = 0
	assert.Equal(t, 120.0, item.DiscountedPrice())
}
