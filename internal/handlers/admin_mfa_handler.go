package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/utils"
)

// AdminMFAHandler manages TOTP enrollment for back-office accounts.
type AdminMFAHandler struct {
	db    *gorm.DB
	audit *utils.AuditLogger
}

func NewAdminMFAHandler(db *gorm.DB, audit *utils.AuditLogger) *AdminMFAHandler {
	return &AdminMFAHandler{db: db, audit: audit}
}

type VerifyMFARequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// Setup generates a fresh TOTP secret for the admin and returns the
// provisioning URI. The secret only becomes active after Verify.
func (h *AdminMFAHandler) Setup(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", adminID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	secret := utils.GenerateOTPSecret()

	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"totp_secret":  secret,
		"totp_enabled": false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store secret"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret":           secret,
		"provisioning_uri": utils.GenerateOTPProvisioningURI(secret, user.Email),
	})
}

// Verify confirms a code against the pending secret and enables MFA.
func (h *AdminMFAHandler) Verify(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req VerifyMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", adminID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	if user.TOTPSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "MFA setup has not been started"})
		return
	}

	if !utils.ValidateTOTP(user.TOTPSecret, req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code"})
		return
	}

	if err := h.db.Model(&user).Update("totp_enabled", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable MFA"})
		return
	}

	h.audit.Record(adminID, utils.AuditEventAdminMFAEnabled, &user.ID, "totp enabled", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "MFA enabled"})
}
