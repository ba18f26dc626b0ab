package services

import (
	"log"

	"canteen/internal/models"
	"canteen/internal/redis"
)

// Event names match what the dashboards listen for.
const (
	EventNewOrder     = "newOrder"
	EventStatusUpdate = "statusUpdate"
)

type OrderEvent struct {
	Event string        `json:"event"`
	Order *models.Order `json:"order"`
}

// Notifier fans out order events to connected client sessions. Delivery is
// best-effort and at-most-once per connected session; disconnected clients
// reconcile by re-fetching their orders.
type Notifier interface {
	NewOrder(order *models.Order)
	StatusChanged(order *models.Order)
	OTPRegenerated(order *models.Order)
}

type EventPublisher interface {
	PublishEvent(channel string, payload interface{}) error
}

type notificationService struct {
	publisher EventPublisher
}

func NewNotificationService(publisher EventPublisher) Notifier {
	return &notificationService{publisher: publisher}
}

// NewOrder notifies staff dashboards that a new order arrived.
func (s *notificationService) NewOrder(order *models.Order) {
	s.publish(redis.StaffChannel, EventNewOrder, withoutOTP(order))
}

// StatusChanged notifies the owning customer and the staff dashboards. The
// OTP travels only on the owner's channel.
func (s *notificationService) StatusChanged(order *models.Order) {
	s.publish(redis.UserChannel(order.UserID), EventStatusUpdate, order)
	s.publish(redis.StaffChannel, EventStatusUpdate, withoutOTP(order))
}

// OTPRegenerated is a customer-only action; staff dashboards are not told.
func (s *notificationService) OTPRegenerated(order *models.Order) {
	s.publish(redis.UserChannel(order.UserID), EventStatusUpdate, order)
}

func (s *notificationService) publish(channel, event string, order *models.Order) {
	err := s.publisher.PublishEvent(channel, &OrderEvent{Event: event, Order: order})
	if err != nil {
		// Best-effort: stored state is already committed, clients refetch.
		log.Printf("Warning: failed to publish %s event for order %d: %v", event, order.ID, err)
	}
}

func withoutOTP(order *models.Order) *models.Order {
	sanitized := *order
	sanitized.OTP = ""
	return &sanitized
}
