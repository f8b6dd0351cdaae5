package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/utils"
)

// RegistryHandler exposes the country and payment method registry.
type RegistryHandler struct {
	registry *registry.Service
	audit    *utils.AuditLogger
}

func NewRegistryHandler(registryService *registry.Service, audit *utils.AuditLogger) *RegistryHandler {
	return &RegistryHandler{registry: registryService, audit: audit}
}

// ListCountries returns all active countries.
func (h *RegistryHandler) ListCountries(c *gin.Context) {
	countries, err := h.registry.ListCountries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load countries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

// ListCountryMethods returns the active payment methods for one country,
// ordered by priority.
func (h *RegistryHandler) ListCountryMethods(c *gin.Context) {
	countryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	methods, err := h.registry.ListMethodsForCountry(countryID)
	if err != nil {
		if errors.Is(err, registry.ErrCountryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment methods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

type CreateMethodTypeRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateMethodType registers a new global payment method type (admin).
func (h *RegistryHandler) CreateMethodType(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateMethodTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	methodType, err := h.registry.CreateMethodType(req.Name, models.PaymentMethodCode(req.Code), req.Description)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment method code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method type"})
		return
	}
	h.audit.Record(adminID, utils.AuditEventMethodTypeCreated, &methodType.ID, "code="+string(methodType.Code), c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"payment_method_type": methodType})
}

type UpsertCountryMethodRequest struct {
	PaymentMethodID string      `json:"payment_method_id" binding:"required,uuid"`
	Instructions    string      `json:"instructions" binding:"required"`
	Configuration   models.JSON `json:"configuration"`
	Priority        int         `json:"priority"`
	IsActive        *bool       `json:"is_active"`
}

// UpsertCountryMethod enables or reconfigures a payment method for a country (admin).
func (h *RegistryHandler) UpsertCountryMethod(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	countryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpsertCountryMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	methodID, ok := parseUUID(c, req.PaymentMethodID, "payment_method_id")
	if !ok {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	method, err := h.registry.UpsertCountryMethod(countryID, methodID, req.Instructions, req.Configuration, req.Priority, active)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrCountryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		case errors.Is(err, registry.ErrMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method type not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	h.audit.Record(adminID, utils.AuditEventCountryMethodSaved, &method.ID,
		"country="+countryID.String()+" method="+methodID.String(), c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"country_payment_method": method})
}

// DeleteCountryMethod removes a payment method mapping from a country (admin).
func (h *RegistryHandler) DeleteCountryMethod(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	countryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	methodID, ok := parseIDParam(c, "methodId")
	if !ok {
		return
	}

	if err := h.registry.DeleteCountryMethod(countryID, methodID); err != nil {
		if errors.Is(err, registry.ErrMethodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method mapping not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove payment method"})
		return
	}
	h.audit.Record(adminID, utils.AuditEventCountryMethodDeleted, &methodID,
		"country="+countryID.String(), c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Payment method removed"})
}
