package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

// PortalAuthMiddleware authenticates guests on the self-service portal via
// the X-Portal-Token header. The token's sha256 is looked up against the
// stored hash and compared in constant time; the matched booking id lands in
// the context.
func PortalAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Portal-Token")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("portal token missing"))
			c.Abort()
			return
		}

		hash := utils.HashToken(token)

		var booking models.Booking
		if err := db.Where("portal_token_hash = ?", hash).First(&booking).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid portal token"))
			c.Abort()
			return
		}

		if booking.PortalTokenHash == nil || !utils.VerifyTokenHash(token, *booking.PortalTokenHash) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid portal token"))
			c.Abort()
			return
		}

		if booking.IsCancelled() {
			utils.RespondError(c, http.StatusForbidden, errors.New("booking is cancelled"))
			c.Abort()
			return
		}

		c.Set("booking_id", booking.ID)
		c.Next()
	}
}
