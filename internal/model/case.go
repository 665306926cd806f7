package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseStatus — состояние уголовного дела (FIR).
type CaseStatus string

const (
	CaseStatusOpen     CaseStatus = "OPEN"
	CaseStatusDisposed CaseStatus = "DISPOSED"
)

// Case — зарегистрированное дело с человекочитаемым номером FIR-<год>-<nnn>.
type Case struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	PoliceStation string    `gorm:"not null" json:"policeStation"`
	IOName        string    `gorm:"column:io_name;not null" json:"ioName"`
	IOID          string    `gorm:"column:io_id;not null" json:"ioId"`
	CrimeNumber   string    `gorm:"not null;uniqueIndex" json:"crimeNumber"`
	CrimeYear     int       `gorm:"not null;index:idx_cases_year_created,priority:1" json:"crimeYear"`
	FIRDate       time.Time `gorm:"column:fir_date;not null" json:"firDate"`
	SeizureDate   time.Time `gorm:"not null" json:"seizureDate"`
	ActLaw        string    `gorm:"not null" json:"actLaw"`
	SectionLaw    string    `gorm:"not null" json:"sectionLaw"`

	Status CaseStatus `gorm:"not null;default:OPEN;index" json:"status"`

	// Создатель записи
	UserID int64 `gorm:"not null;index" json:"userId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`

	Properties []Property `gorm:"foreignKey:CaseID" json:"properties,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_cases_year_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate проставляет UUID и начальный статус.
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CaseStatusOpen
	}
	return nil
}

// CaseCounter — счётчик номеров дел в пределах года преступления.
type CaseCounter struct {
	CrimeYear int       `gorm:"primaryKey;autoIncrement:false"`
	LastSeq   int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
