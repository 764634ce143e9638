package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"asset-management-api/internal/model"
)

// Field length limits
const (
	MaxNameLength      = 100
	MaxEmailLength     = 100
	MaxDetailsLength   = 1000
	MaxSignatureLength = 255
	MaxSerialLength    = 100
)

// ValidateEmail validates an email address and returns its normalized
// (lowercased, trimmed) form. Email matching is case-insensitive everywhere.
func ValidateEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(normalized) > MaxEmailLength {
		return "", fmt.Errorf("email cannot exceed %d characters", MaxEmailLength)
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", fmt.Errorf("invalid email address: %s", email)
	}
	return normalized, nil
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateSignature validates a typed-name signature.
func ValidateSignature(signature string) error {
	if strings.TrimSpace(signature) == "" {
		return fmt.Errorf("signature is required")
	}
	if len(signature) > MaxSignatureLength {
		return fmt.Errorf("signature cannot exceed %d characters", MaxSignatureLength)
	}
	return nil
}

// ValidateSerialNumber validates an IT-issued serial number.
func ValidateSerialNumber(serial string) error {
	if strings.TrimSpace(serial) == "" {
		return fmt.Errorf("serial number is required")
	}
	if len(serial) > MaxSerialLength {
		return fmt.Errorf("serial number cannot exceed %d characters", MaxSerialLength)
	}
	return nil
}

// ValidateUserInput validates all required fields for creating a new user.
func ValidateUserInput(user *model.User) []string {
	var errs []string

	if err := ValidateRequired("name", user.Name); err != nil {
		errs = append(errs, err.Error())
	} else if len(user.Name) > MaxNameLength {
		errs = append(errs, fmt.Sprintf("name cannot exceed %d characters", MaxNameLength))
	}

	normalized, err := ValidateEmail(user.Email)
	if err != nil {
		errs = append(errs, err.Error())
	} else {
		user.Email = normalized
	}

	if !user.Role.Valid() {
		errs = append(errs, fmt.Sprintf("invalid role: %s", user.Role))
	}

	return errs
}

// ValidateAssetInput validates fields for creating or updating an asset. Only
// the type is strictly required; an assigned owner forces assigned status.
func ValidateAssetInput(asset *model.Asset) []string {
	var errs []string

	if asset.Type == "" {
		errs = append(errs, "asset type is required")
	} else if !asset.Type.Valid() {
		errs = append(errs, fmt.Sprintf("invalid asset type: %s", asset.Type))
	}

	if asset.Status != "" && !asset.Status.Valid() {
		errs = append(errs, fmt.Sprintf("invalid asset status: %s", asset.Status))
	}

	if asset.AssignedTo != nil && asset.Status != "" && asset.Status != model.AssetStatusAssigned {
		errs = append(errs, "an asset with an assigned owner must have status assigned")
	}

	if len(asset.Details) > MaxDetailsLength {
		errs = append(errs, fmt.Sprintf("details cannot exceed %d characters", MaxDetailsLength))
	}

	if asset.SerialNumber != nil {
		if err := ValidateSerialNumber(*asset.SerialNumber); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

// ValidateAssetRequestInput validates fields for submitting an asset request.
func ValidateAssetRequestInput(req *model.AssetRequest) []string {
	var errs []string

	if req.UserID == uuid.Nil {
		errs = append(errs, "user_id is required")
	}

	if req.AssetType == "" {
		errs = append(errs, "asset type is required")
	} else if !req.AssetType.Valid() {
		errs = append(errs, fmt.Sprintf("invalid asset type: %s", req.AssetType))
	}

	if err := ValidateRequired("request details", req.RequestDetails); err != nil {
		errs = append(errs, err.Error())
	} else if len(req.RequestDetails) > MaxDetailsLength {
		errs = append(errs, fmt.Sprintf("request details cannot exceed %d characters", MaxDetailsLength))
	}

	return errs
}

// ValidateConsentFormInput validates fields for creating a consent form.
func ValidateConsentFormInput(form *model.ConsentForm) []string {
	var errs []string

	if form.UserID == uuid.Nil {
		errs = append(errs, "user_id is required")
	}
	if form.AssetID == uuid.Nil {
		errs = append(errs, "asset_id is required")
	}
	if err := ValidateRequired("content", form.Content); err != nil {
		errs = append(errs, err.Error())
	}

	return errs
}

// ValidateTerminationInput validates fields for creating a termination request.
func ValidateTerminationInput(term *model.TerminationRequest) []string {
	var errs []string

	if term.UserID == uuid.Nil {
		errs = append(errs, "user_id is required")
	}
	if err := ValidateRequired("reason", term.Reason); err != nil {
		errs = append(errs, err.Error())
	}
	if len(term.CollectedAssets) == 0 {
		errs = append(errs, "at least one asset to collect is required")
	}
	for _, entry := range term.CollectedAssets {
		if entry.AssetID == uuid.Nil {
			errs = append(errs, "collected asset entries require an asset_id")
			break
		}
	}

	return errs
}
