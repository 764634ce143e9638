package model

import (
	"time"

	"github.com/google/uuid"
)

// AssetType classifies a trackable resource.
type AssetType string

const (
	AssetTypeCompanyCar  AssetType = "company_car"
	AssetTypeMobile      AssetType = "mobile"
	AssetTypeComputer    AssetType = "computer"
	AssetTypeLaptop      AssetType = "laptop"
	AssetTypeIPPhone     AssetType = "ip_phone"
	AssetTypeEmail       AssetType = "email"
	AssetTypeAccessories AssetType = "accessories"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeCompanyCar, AssetTypeMobile, AssetTypeComputer,
		AssetTypeLaptop, AssetTypeIPPhone, AssetTypeEmail, AssetTypeAccessories:
		return true
	}
	return false
}

// AssetStatus tracks where an asset sits in its lifecycle.
type AssetStatus string

const (
	AssetStatusAssigned             AssetStatus = "assigned"
	AssetStatusPendingApproval      AssetStatus = "pending_approval"
	AssetStatusApproved             AssetStatus = "approved"
	AssetStatusRejected             AssetStatus = "rejected"
	AssetStatusReturned             AssetStatus = "returned"
	AssetStatusReplacementRequested AssetStatus = "replacement_requested"
)

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusAssigned, AssetStatusPendingApproval, AssetStatusApproved,
		AssetStatusRejected, AssetStatusReturned, AssetStatusReplacementRequested:
		return true
	}
	return false
}

// Asset represents a trackable physical or virtual resource. SerialNumber is
// assigned by IT after physical issuance, not at creation, so it is nullable.
type Asset struct {
	ID           uuid.UUID   `json:"id"`
	Type         AssetType   `json:"type"`
	SerialNumber *string     `json:"serial_number,omitempty"`
	Model        *string     `json:"model,omitempty"`
	Details      string      `json:"details"`
	AssignedTo   *uuid.UUID  `json:"assigned_to,omitempty"`
	AssignedDate *time.Time  `json:"assigned_date,omitempty"`
	Status       AssetStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
