package utils

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEventType represents the type of back-office event
type AuditEventType string

const (
	AuditEventTransactionVerified  AuditEventType = "TRANSACTION_VERIFIED"
	AuditEventTransactionDeclined  AuditEventType = "TRANSACTION_DECLINED"
	AuditEventWithdrawalUpdated    AuditEventType = "WITHDRAWAL_UPDATED"
	AuditEventMethodTypeCreated    AuditEventType = "PAYMENT_METHOD_TYPE_CREATED"
	AuditEventCountryMethodSaved   AuditEventType = "COUNTRY_METHOD_SAVED"
	AuditEventCountryMethodDeleted AuditEventType = "COUNTRY_METHOD_DELETED"
	AuditEventPackageSaved         AuditEventType = "SUBSCRIPTION_PACKAGE_SAVED"
	AuditEventAdminMFAEnabled      AuditEventType = "ADMIN_MFA_ENABLED"
)

// AuditLog is a back-office audit trail entry. Every admin mutation writes
// one; failures to write are logged but never fail the admin's operation.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	ActorID   *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id"`
	EventType AuditEventType `gorm:"type:varchar(50);index" json:"event_type"`
	EntityID  *uuid.UUID     `gorm:"type:uuid;index" json:"entity_id"`
	Detail    string         `gorm:"type:text" json:"detail"`
	IPAddress string         `gorm:"type:varchar(45)" json:"ip_address"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// AuditLogger writes audit log entries
type AuditLogger struct {
	db *gorm.DB
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Record writes an audit entry.
func (a *AuditLogger) Record(actorID uuid.UUID, event AuditEventType, entityID *uuid.UUID, detail, ip string) {
	entry := AuditLog{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		ActorID:   &actorID,
		EventType: event,
		EntityID:  entityID,
		Detail:    detail,
		IPAddress: ip,
	}
	if err := a.db.Create(&entry).Error; err != nil {
		log.Printf("audit log write failed: %v", err)
	}
}
