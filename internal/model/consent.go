package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsentForm is a document tied to one asset assignment. It needs the
// assignee's digital signature plus independent admin and management sign-off.
type ConsentForm struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	AssetID            uuid.UUID  `json:"asset_id"`
	Sent               bool       `json:"sent"`
	Signed             bool       `json:"signed"`
	DateCreated        time.Time  `json:"date_created"`
	DateSigned         *time.Time `json:"date_signed,omitempty"`
	Content            string     `json:"content"`
	Signature          *string    `json:"signature,omitempty"`
	AdminApproved      bool       `json:"admin_approved"`
	ManagementApproved bool       `json:"management_approved"`
}

// FullyApproved reports whether both admin and management have signed off.
func (f *ConsentForm) FullyApproved() bool {
	return f.AdminApproved && f.ManagementApproved
}
