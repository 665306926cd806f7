package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category — вид изъятого имущества.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryWeapon      Category = "WEAPON"
	CategoryVehicle     Category = "VEHICLE"
	CategoryCash        Category = "CASH"
	CategoryNarcotics   Category = "NARCOTICS"
	CategoryDocuments   Category = "DOCUMENTS"
	CategoryOther       Category = "OTHER"
)

// BelongingTo — чьё это имущество.
type BelongingTo string

const (
	BelongsToAccused     BelongingTo = "ACCUSED"
	BelongsToComplainant BelongingTo = "COMPLAINANT"
	BelongsToVictim      BelongingTo = "VICTIM"
	BelongsToUnknown     BelongingTo = "UNKNOWN"
)

// Nature — как имущество попало в полицию.
type Nature string

const (
	NatureRecovered Nature = "RECOVERED"
	NatureSeized    Nature = "SEIZED"
	NatureAbandoned Nature = "ABANDONED"
)

// PropertyStatus — состояние вещдока. IN_CUSTODY -> DISPOSED, обратного перехода нет.
type PropertyStatus string

const (
	PropertyInCustody PropertyStatus = "IN_CUSTODY"
	PropertyDisposed  PropertyStatus = "DISPOSED"
)

// Property — один физический предмет, изъятый по делу.
type Property struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	CaseID string `gorm:"type:uuid;not null;index:idx_properties_case_status,priority:1" json:"caseId"`
	Case   *Case  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"case,omitempty"`

	Category    Category    `gorm:"not null;index" json:"category"`
	BelongingTo BelongingTo `gorm:"not null" json:"belongingTo"`
	Nature      Nature      `gorm:"not null" json:"nature"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	Location    string      `gorm:"not null" json:"location"`
	Description string      `gorm:"not null" json:"description"`
	PhotoURL    *string     `json:"photoUrl,omitempty"`
	PhotoKey    *string     `json:"photoKey,omitempty"` // ключ в хранилище фотографий

	QRString    string `gorm:"column:qr_string;not null;uniqueIndex" json:"qrString"`
	QRCodeImage string `gorm:"column:qr_code_image;type:text" json:"qrCodeImage,omitempty"`

	Status PropertyStatus `gorm:"not null;default:IN_CUSTODY;index:idx_properties_case_status,priority:2" json:"status"`

	CustodyLogs []CustodyLog `gorm:"foreignKey:PropertyID" json:"custodyLogs,omitempty"`
	Disposal    *Disposal    `gorm:"foreignKey:PropertyID" json:"disposal,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate проставляет UUID и начальный статус.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PropertyInCustody
	}
	return nil
}
