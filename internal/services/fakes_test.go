package services

import (
	"errors"
	"sync"
	"time"

	"canteen/internal/models"
	"canteen/internal/redis"

	"gorm.io/gorm"
)

// In-memory fakes for the repository and notifier interfaces.

type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[uint]*models.MenuItem
}

func newFakeMenuRepo(items ...*models.MenuItem) *fakeMenuRepo {
	r := &fakeMenuRepo{items: make(map[uint]*models.MenuItem)}
	for _, item := range items {
		copied := *item
		r.items[item.ID] = &copied
	}
	return r
}

func (r *fakeMenuRepo) Create(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == 0 {
		item.ID = uint(len(r.items) + 1)
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) GetByID(id uint) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMenuRepo) GetAll() ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}
	return items, nil
}

func (r *fakeMenuRepo) Update(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) DecrementStock(id uint, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.StockQuantity < qty {
		return false, nil
	}
	item.StockQuantity -= qty
	return true, nil
}

func (r *fakeMenuRepo) RestoreStock(id uint, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.StockQuantity += qty
	return nil
}

func (r *fakeMenuRepo) stock(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].StockQuantity
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uint]*models.Order
	nextID    uint
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []models.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uint, status, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	order.OTP = otp
	return nil
}

func (r *fakeOrderRepo) UpdateOTP(id uint, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.OTP = otp
	return nil
}

func (r *fakeOrderRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// setOTP plants a known code for deterministic verification tests.
func (r *fakeOrderRepo) setOTP(id uint, otp string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[id].OTP = otp
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, user := range users {
		copied := *user
		r.users[user.ID] = &copied
	}
	return r
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []models.User
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// capturedEvent records one notifier call.
type capturedEvent struct {
	kind  string // newOrder, statusChanged, otpRegenerated
	order models.Order
}

type capturingNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (n *capturingNotifier) NewOrder(order *models.Order) {
	n.record("newOrder", order)
}

func (n *capturingNotifier) StatusChanged(order *models.Order) {
	n.record("statusChanged", order)
}

func (n *capturingNotifier) OTPRegenerated(order *models.Order) {
	n.record("otpRegenerated", order)
}

func (n *capturingNotifier) record(kind string, order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, capturedEvent{kind: kind, order: *order})
}

func (n *capturingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]string, len(n.events))
	for i, e := range n.events {
		kinds[i] = e.kind
	}
	return kinds
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*redis.SessionData
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*redis.SessionData)}
}

func (s *fakeSessionStore) SetSession(token string, data *redis.SessionData, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = data
	return nil
}

func (s *fakeSessionStore) GetSession(token string) (*redis.SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (s *fakeSessionStore) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
