package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DisposalType — способ окончательного распоряжения вещдоком.
type DisposalType string

const (
	DisposalAuction     DisposalType = "AUCTION"
	DisposalDestroyed   DisposalType = "DESTROYED"
	DisposalReturned    DisposalType = "RETURNED"
	DisposalTransferred DisposalType = "TRANSFERRED"
)

// Disposal — итоговая запись по вещдоку. Не больше одной на вещдок.
type Disposal struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	PropertyID string `gorm:"type:uuid;not null;uniqueIndex" json:"propertyId"`

	Type          DisposalType `gorm:"not null" json:"type"`
	CourtOrderRef string       `gorm:"not null" json:"courtOrderRef"`
	DisposedAt    time.Time    `gorm:"not null" json:"disposedAt"`
	Remarks       *string      `json:"remarks"`
	DisposedBy    int64        `gorm:"not null" json:"disposedBy"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (d *Disposal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
