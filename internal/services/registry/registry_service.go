package registry

import (
	"errors"
	"fmt"

	"github.com/amora/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateCode is returned when creating a method type with an existing code.
	ErrDuplicateCode = errors.New("payment method code already exists")
	// ErrCountryNotFound is returned for unknown countries.
	ErrCountryNotFound = errors.New("country not found")
	// ErrMethodNotFound is returned for unknown payment methods.
	ErrMethodNotFound = errors.New("payment method not found")
	// ErrMethodInactive is returned when the country/method combination is disabled.
	ErrMethodInactive = errors.New("payment method is not active for this country")
)

// CountryMethod is a country's configured payment method joined with its
// global type, the shape the client renders.
type CountryMethod struct {
	PaymentMethodID   uuid.UUID                `json:"payment_method_id"`
	PaymentMethodName string                   `json:"payment_method_name"`
	PaymentMethodCode models.PaymentMethodCode `json:"payment_method_code"`
	UserInstructions  string                   `json:"user_instructions"`
	Configuration     models.JSON              `json:"configuration_details"`
	Priority          int                      `json:"priority"`
}

// Service maintains the country/payment-method registry.
type Service struct {
	db *gorm.DB
}

// NewService creates a new registry service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListCountries returns active countries ordered by name.
func (s *Service) ListCountries() ([]models.Country, error) {
	var countries []models.Country
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("error listing countries: %w", err)
	}
	return countries, nil
}

// ListMethodsForCountry returns the country's active methods joined with the
// global type, ordered by priority descending then name. An empty slice is a
// valid result.
func (s *Service) ListMethodsForCountry(countryID uuid.UUID) ([]CountryMethod, error) {
	var rows []models.CountryPaymentMethod
	err := s.db.
		Joins("PaymentMethod").
		Where("country_payment_methods.country_id = ? AND country_payment_methods.is_active = ? AND \"PaymentMethod\".is_active = ?", countryID, true, true).
		Order("country_payment_methods.priority DESC, \"PaymentMethod\".name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error listing country methods: %w", err)
	}

	methods := make([]CountryMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, CountryMethod{
			PaymentMethodID:   row.PaymentMethodID,
			PaymentMethodName: row.PaymentMethod.Name,
			PaymentMethodCode: row.PaymentMethod.Code,
			UserInstructions:  row.UserInstructions,
			Configuration:     row.Configuration,
			Priority:          row.Priority,
		})
	}
	return methods, nil
}

// ResolveActiveMethod returns the active configuration for a country/method
// pair, distinguishing "unknown" from "configured but inactive".
func (s *Service) ResolveActiveMethod(countryID, methodID uuid.UUID) (*models.CountryPaymentMethod, error) {
	var country models.Country
	if err := s.db.First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("error finding country: %w", err)
	}

	var row models.CountryPaymentMethod
	err := s.db.Preload("PaymentMethod").
		Where("country_id = ? AND payment_method_id = ?", countryID, methodID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("error finding country method: %w", err)
	}

	if !row.IsActive || !row.PaymentMethod.IsActive {
		return nil, ErrMethodInactive
	}
	return &row, nil
}

// CreateMethodType creates a global payment method type. The code must be unique.
func (s *Service) CreateMethodType(name string, code models.PaymentMethodCode, description string) (*models.PaymentMethodType, error) {
	var existing models.PaymentMethodType
	err := s.db.Where("code = ?", code).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateCode
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking method code: %w", err)
	}

	mt := models.PaymentMethodType{
		Name:        name,
		Code:        code,
		Description: description,
		IsActive:    true,
	}
	if err := s.db.Create(&mt).Error; err != nil {
		return nil, fmt.Errorf("error creating method type: %w", err)
	}
	return &mt, nil
}

// UpsertCountryMethod creates or replaces a country's configuration for a
// global method. The configuration shape is validated against the method code.
func (s *Service) UpsertCountryMethod(countryID, methodID uuid.UUID, instructions string, configuration models.JSON, priority int, isActive bool) (*models.CountryPaymentMethod, error) {
	var country models.Country
	if err := s.db.First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("error finding country: %w", err)
	}

	var mt models.PaymentMethodType
	if err := s.db.First(&mt, "id = ?", methodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("error finding method type: %w", err)
	}

	if err := ValidateConfiguration(mt.Code, configuration); err != nil {
		return nil, err
	}

	var row models.CountryPaymentMethod
	err := s.db.Where("country_id = ? AND payment_method_id = ?", countryID, methodID).First(&row).Error
	switch {
	case err == nil:
		row.UserInstructions = instructions
		row.Configuration = configuration
		row.Priority = priority
		row.IsActive = isActive
		if err := s.db.Save(&row).Error; err != nil {
			return nil, fmt.Errorf("error updating country method: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.CountryPaymentMethod{
			CountryID:        countryID,
			PaymentMethodID:  methodID,
			UserInstructions: instructions,
			Configuration:    configuration,
			Priority:         priority,
			IsActive:         isActive,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("error creating country method: %w", err)
		}
	default:
		return nil, fmt.Errorf("error finding country method: %w", err)
	}

	return &row, nil
}

// DeleteCountryMethod hard-deletes a country's method configuration.
func (s *Service) DeleteCountryMethod(countryID, methodID uuid.UUID) error {
	result := s.db.Unscoped().
		Where("country_id = ? AND payment_method_id = ?", countryID, methodID).
		Delete(&models.CountryPaymentMethod{})
	if result.Error != nil {
		return fmt.Errorf("error deleting country method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMethodNotFound
	}
	return nil
}
