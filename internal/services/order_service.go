package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync"

	"canteen/internal/models"
	"canteen/internal/repository"

	"gorm.io/gorm"
)

// OrderLine is one requested line item of a checkout. Prices are never taken
// from the client; the engine snapshots them from the menu at placement time.
type OrderLine struct {
	MenuItemID uint `json:"menuItemId"`
	Quantity   int  `json:"quantity"`
}

type OrderService interface {
	PlaceOrder(userID uint, lines []OrderLine) (*models.Order, error)
	TransitionStatus(orderID uint, requestedStatus, actorRole string) (*models.Order, error)
	RegenerateOTP(orderID, requestingUserID uint) (*models.Order, error)
	VerifyOTPAndComplete(orderID uint, suppliedOTP, actorRole string) (*models.Order, error)
	DeleteOrder(orderID, requestingUserID uint, actorRole string) error
	GetOrder(id uint) (*models.Order, error)
	ListOrders(actorID uint, actorRole string) ([]models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	userRepo  repository.UserRepository
	notifier  Notifier
	locks     orderLocks
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// orderLocks serializes mutating operations per order id so two staff members
// cannot double-transition an order and a customer cannot regenerate an OTP
// mid-verification.
type orderLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (l *orderLocks) get(orderID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[uint]*sync.Mutex)
	}
	lock, ok := l.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[orderID] = lock
	}
	return lock
}

// release drops the map entry for an order that no longer exists. Any
// straggler that raced the delete re-reads the order and fails with NotFound.
func (l *orderLocks) release(orderID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, orderID)
}

// PlaceOrder validates stock for every line, decrements atomically, persists
// the order with snapshotted prices, and notifies staff. Validation, decrement
// and creation behave as one logical transaction: any failure after a
// decrement restores the stock already taken.
func (s *orderService) PlaceOrder(userID uint, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidOrder
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidOrder
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}

	// All-or-nothing availability check before any mutation.
	items := make([]models.OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		menuItem, err := s.menuRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, asNotFound(err, "menu item")
		}
		if menuItem.StockQuantity < line.Quantity {
			return nil, &InsufficientStockError{
				ItemName:  menuItem.Name,
				Available: menuItem.StockQuantity,
				Requested: line.Quantity,
			}
		}
		unitPrice := menuItem.DiscountedPrice()
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      unitPrice,
			Quantity:   line.Quantity,
		})
		total += unitPrice * float64(line.Quantity)
	}

	// Conditional decrements; a concurrent checkout may still win the race,
	// in which case everything taken so far is restored.
	decremented := make([]OrderLine, 0, len(lines))
	for i, line := range lines {
		ok, err := s.menuRepo.DecrementStock(line.MenuItemID, line.Quantity)
		if err != nil {
			s.restoreAll(decremented)
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !ok {
			s.restoreAll(decremented)
			available := 0
			if current, err := s.menuRepo.GetByID(line.MenuItemID); err == nil {
				available = current.StockQuantity
			}
			return nil, &InsufficientStockError{
				ItemName:  items[i].Name,
				Available: available,
				Requested: line.Quantity,
			}
		}
		decremented = append(decremented, line)
	}

	order := &models.Order{
		UserID:     user.ID,
		UserName:   user.Name,
		Items:      items,
		TotalPrice: total,
		Status:     string(models.StatusPending),
	}
	if err := s.orderRepo.Create(order); err != nil {
		s.restoreAll(decremented)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifier.NewOrder(order)
	return order, nil
}

func (s *orderService) restoreAll(decremented []OrderLine) {
	for _, line := range decremented {
		if err := s.menuRepo.RestoreStock(line.MenuItemID, line.Quantity); err != nil {
			log.Printf("Warning: failed to restore stock for item %d: %v", line.MenuItemID, err)
		}
	}
}

// TransitionStatus moves an order exactly one step forward through
// Pending -> Preparing -> Ready for Pickup -> Completed. Entering Ready for
// Pickup issues a fresh OTP for pickup verification.
func (s *orderService) TransitionStatus(orderID uint, requestedStatus, actorRole string) (*models.Order, error) {
	if !models.IsStaff(actorRole) {
		return nil, ErrForbidden
	}

	lock := s.locks.get(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, asNotFound(err, "order")
	}

	next, ok := models.NextStatus(order.Status)
	if !ok || requestedStatus != next {
		return nil, &InvalidTransitionError{From: order.Status, To: requestedStatus}
	}

	otp := ""
	if next == string(models.StatusReadyForPickup) {
		otp, err = generateOTP()
		if err != nil {
			return nil, fmt.Errorf("failed to generate otp: %w", err)
		}
	}
	if err := s.orderRepo.UpdateStatus(orderID, next, otp); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// Published after the write and still under the per-order lock: events
	// for one order always go out in commit order.
	order.Status = next
	order.OTP = otp
	s.notifier.StatusChanged(order)
	return order, nil
}

// RegenerateOTP replaces the pickup code of the caller's own order. Only legal
// while the order is Ready for Pickup; status does not change and staff are
// not notified.
func (s *orderService) RegenerateOTP(orderID, requestingUserID uint) (*models.Order, error) {
	lock := s.locks.get(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, asNotFound(err, "order")
	}
	if order.UserID != requestingUserID {
		return nil, ErrForbidden
	}
	if order.Status != string(models.StatusReadyForPickup) {
		return nil, ErrInvalidState
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.orderRepo.UpdateOTP(orderID, otp); err != nil {
		return nil, fmt.Errorf("failed to update otp: %w", err)
	}

	order.OTP = otp
	s.notifier.OTPRegenerated(order)
	return order, nil
}

// VerifyOTPAndComplete checks the code a customer presents at the counter and
// completes the order on an exact match. A mismatch leaves the order untouched.
func (s *orderService) VerifyOTPAndComplete(orderID uint, suppliedOTP, actorRole string) (*models.Order, error) {
	if !models.IsStaff(actorRole) {
		return nil, ErrForbidden
	}

	lock := s.locks.get(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, asNotFound(err, "order")
	}
	if order.Status != string(models.StatusReadyForPickup) {
		return nil, ErrInvalidState
	}
	if order.OTP == "" || suppliedOTP != order.OTP {
		return nil, ErrInvalidOTP
	}

	// Completed is terminal; the spent code is cleared.
	if err := s.orderRepo.UpdateStatus(orderID, string(models.StatusCompleted), ""); err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	order.Status = string(models.StatusCompleted)
	order.OTP = ""
	s.notifier.StatusChanged(order)
	return order, nil
}

// DeleteOrder removes an order. Admins may delete any order; everyone else may
// delete only their own completed orders. Deletion never restocks inventory:
// served orders consumed stock permanently.
func (s *orderService) DeleteOrder(orderID, requestingUserID uint, actorRole string) error {
	lock := s.locks.get(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return asNotFound(err, "order")
	}

	if actorRole != string(models.RoleAdmin) {
		if order.UserID != requestingUserID {
			return ErrForbidden
		}
		if order.Status != string(models.StatusCompleted) {
			return ErrInvalidState
		}
	}

	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}
	s.locks.release(orderID)
	return nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "order")
	}
	return order, nil
}

// ListOrders returns all orders for staff, newest first, and only the caller's
// own orders otherwise.
func (s *orderService) ListOrders(actorID uint, actorRole string) ([]models.Order, error) {
	if models.IsStaff(actorRole) {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByUserID(actorID)
}

// generateOTP returns a uniform random 5-digit code, leading zeros kept.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}

func asNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
