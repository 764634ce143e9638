package model

import (
	"time"

	"github.com/google/uuid"
)

// CollectedAsset is one entry in a termination's collection checklist. The
// collector signature is captured at the time of physical handover.
type CollectedAsset struct {
	AssetID            uuid.UUID `json:"asset_id"`
	Collected          bool      `json:"collected"`
	CollectorSignature *string   `json:"collector_signature,omitempty"`
}

// TerminationRequest tracks offboarding of a departing user: management
// approval plus per-asset collection confirmation.
type TerminationRequest struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             uuid.UUID        `json:"user_id"`
	Reason             string           `json:"reason"`
	RequestDate        time.Time        `json:"request_date"`
	Status             RequestStatus    `json:"status"`
	HandoverNotes      *string          `json:"handover_notes,omitempty"`
	CollectedAssets    []CollectedAsset `json:"collected_assets"`
	ManagementApproval bool             `json:"management_approval"`
}

// AllCollected reports whether every listed asset has been collected.
func (t *TerminationRequest) AllCollected() bool {
	if len(t.CollectedAssets) == 0 {
		return false
	}
	for _, a := range t.CollectedAssets {
		if !a.Collected {
			return false
		}
	}
	return true
}
