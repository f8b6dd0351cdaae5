package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/utils"
)

// AdminOTPMiddleware requires a valid X-Admin-OTP header for admins who
// have TOTP enabled. Admins still enrolling pass through so they can
// reach the MFA setup endpoints.
func AdminOTPMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("totp_secret", "totp_enabled").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		if !user.TOTPEnabled {
			c.Next()
			return
		}

		code := c.GetHeader("X-Admin-OTP")
		if code == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "One-time code required"})
			c.Abort()
			return
		}
		if !utils.ValidateTOTP(user.TOTPSecret, code) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid one-time code"})
			c.Abort()
			return
		}

		c.Next()
	}
}
