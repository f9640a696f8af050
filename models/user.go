package models

import "time"

const (
	RoleAdmin   = 1
	RoleRegular = 2
)

// User is keyed by the national ID (DNI) the person logs in with.
type User struct {
	DNI          string    `json:"id" gorm:"primaryKey;size:9;column:dni"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Surname      string    `json:"surname" gorm:"size:120;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         int       `json:"role" gorm:"not null"` // RoleAdmin | RoleRegular
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(r int) bool {
	return r == RoleAdmin || r == RoleRegular
}
