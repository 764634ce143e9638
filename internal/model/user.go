package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an employee account in the system.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Department  string    `json:"department"`
	DateCreated time.Time `json:"date_created"`
	IsActive    bool      `json:"is_active"`
}
