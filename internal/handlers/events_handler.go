package handlers

import (
	"io"

	"canteen/internal/models"
	"canteen/internal/redis"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	redisClient *redis.Client
}

func NewEventsHandler(redisClient *redis.Client) *EventsHandler {
	return &EventsHandler{redisClient: redisClient}
}

// Stream relays order events to the client over server-sent events until it
// disconnects. Staff sessions get the staff feed; customers get their own
// channel. Events published while a client is away are gone; the client
// re-fetches its orders on reconnect.
func (h *EventsHandler) Stream(c *gin.Context) {
	session := currentSession(c)

	channel := redis.UserChannel(session.UserID)
	if models.IsStaff(session.Role) {
		channel = redis.StaffChannel
	}

	ctx := c.Request.Context()
	pubsub := h.redisClient.SubscribeEvents(ctx, channel)
	defer pubsub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := pubsub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("message", msg.Payload)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
