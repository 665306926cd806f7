package model

import (
	"strings"
	"time"
)

// Role — роль сотрудника в системе.
type Role string

const (
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// User — сотрудник полиции, зарегистрированный в системе.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username,omitempty"`
	Email    string `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password string `gorm:"not null" json:"-"` // bcrypt-хеш

	FirstName  string `gorm:"not null" json:"firstname"`
	LastName   string `gorm:"not null" json:"lastname"`
	Rank       string `json:"rank"`
	StationID  string `json:"stationId,omitempty"`
	ProfilePic string `json:"profilepic,omitempty"`
	Role       Role   `gorm:"not null;default:OFFICER" json:"role,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// FullName возвращает имя, под которым сотрудник фигурирует в журнале передачи.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin сообщает, есть ли у сотрудника права администратора.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
