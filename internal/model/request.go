package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the state of an approval-gated request. Approved and
// rejected are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// AssetRequest is an employee's request for a new or replacement asset.
type AssetRequest struct {
	ID                   uuid.UUID     `json:"id"`
	UserID               uuid.UUID     `json:"user_id"`
	AssetType            AssetType     `json:"asset_type"`
	RequestDetails       string        `json:"request_details"`
	Status               RequestStatus `json:"status"`
	RequestDate          time.Time     `json:"request_date"`
	ApprovedByIT         bool          `json:"approved_by_it"`
	ApprovedByManagement bool          `json:"approved_by_management"`
	Notes                *string       `json:"notes,omitempty"`
	IsReplacement        bool          `json:"is_replacement"`
}
