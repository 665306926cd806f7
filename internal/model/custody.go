package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustodyLog — одна передача вещдока от сотрудника к сотруднику. После записи не меняется.
type CustodyLog struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	PropertyID string `gorm:"type:uuid;not null;index:idx_custody_property_moved,priority:1" json:"propertyId"`

	FromOfficer string  `gorm:"not null" json:"fromOfficer"`
	ToOfficer   string  `gorm:"not null" json:"toOfficer"`
	Purpose     string  `gorm:"not null" json:"purpose"`
	Remarks     *string `json:"remarks"`

	MovedBy int64     `gorm:"not null" json:"movedBy"`
	MovedAt time.Time `gorm:"not null;index:idx_custody_property_moved,priority:2" json:"movedAt"`
}

// BeforeCreate проставляет UUID и время передачи.
func (l *CustodyLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.MovedAt.IsZero() {
		l.MovedAt = time.Now().UTC()
	}
	return nil
}

// ScanLog — отметка о сканировании бирки. Только для аудита.
type ScanLog struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"userId"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"propertyId"`
	ScannedAt  time.Time `gorm:"not null" json:"scannedAt"`
}

func (s *ScanLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.ScannedAt.IsZero() {
		s.ScannedAt = time.Now().UTC()
	}
	return nil
}
