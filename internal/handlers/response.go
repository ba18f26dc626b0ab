package handlers

import (
	"errors"
	"net/http"

	"canteen/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Staff-facing errors
// keep their operational detail (available vs requested, from vs to).
func respondError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	var transitionErr *services.InvalidTransitionError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"item":      stockErr.ItemName,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": transitionErr.Error(),
			"from":  transitionErr.From,
			"to":    transitionErr.To,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, gin.H{"error": "The supplied OTP does not match"})
	case errors.Is(err, services.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
