package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"asset-management-api/internal/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		expectError bool
		expected    string
	}{
		{
			name:        "Valid email",
			email:       "jane.smith@example.com",
			expectError: false,
			expected:    "jane.smith@example.com",
		},
		{
			name:        "Mixed case is normalized",
			email:       "Jane.Smith@Example.COM",
			expectError: false,
			expected:    "jane.smith@example.com",
		},
		{
			name:        "Surrounding whitespace is trimmed",
			email:       "  jane@example.com  ",
			expectError: false,
			expected:    "jane@example.com",
		},
		{
			name:        "Empty email",
			email:       "",
			expectError: true,
		},
		{
			name:        "Missing domain",
			email:       "jane@",
			expectError: true,
		},
		{
			name:        "Not an address",
			email:       "not-an-email",
			expectError: true,
		},
		{
			name:        "Too long",
			email:       strings.Repeat("a", MaxEmailLength) + "@example.com",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateEmail(tt.email)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for email %q, but got none", tt.email)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for email %q: %v", tt.email, err)
				}
				if result != tt.expected {
					t.Errorf("Expected normalized email %q, got %q", tt.expected, result)
				}
			}
		})
	}
}

func TestValidateSignature(t *testing.T) {
	tests := []struct {
		name        string
		signature   string
		expectError bool
	}{
		{
			name:        "Valid signature",
			signature:   "Jane Smith",
			expectError: false,
		},
		{
			name:        "Empty signature",
			signature:   "",
			expectError: true,
		},
		{
			name:        "Whitespace only",
			signature:   "   ",
			expectError: true,
		},
		{
			name:        "Too long",
			signature:   strings.Repeat("x", MaxSignatureLength+1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignature(tt.signature)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for signature %q, but got none", tt.signature)
				}
			} else if err != nil {
				t.Errorf("Unexpected error for signature %q: %v", tt.signature, err)
			}
		})
	}
}

func TestValidateSerialNumber(t *testing.T) {
	if err := ValidateSerialNumber("SN-12345"); err != nil {
		t.Errorf("Unexpected error for valid serial: %v", err)
	}
	if err := ValidateSerialNumber("  "); err == nil {
		t.Error("Expected error for blank serial")
	}
	if err := ValidateSerialNumber(strings.Repeat("9", MaxSerialLength+1)); err == nil {
		t.Error("Expected error for overlong serial")
	}
}

func TestValidateUserInput(t *testing.T) {
	tests := []struct {
		name       string
		user       model.User
		expectErrs int
	}{
		{
			name: "Valid user",
			user: model.User{
				Name:  "Jane Smith",
				Email: "jane@example.com",
				Role:  model.RoleUser,
			},
			expectErrs: 0,
		},
		{
			name: "Missing name",
			user: model.User{
				Email: "jane@example.com",
				Role:  model.RoleAdmin,
			},
			expectErrs: 1,
		},
		{
			name: "Invalid role",
			user: model.User{
				Name:  "Jane Smith",
				Email: "jane@example.com",
				Role:  "superuser",
			},
			expectErrs: 1,
		},
		{
			name:       "Everything missing",
			user:       model.User{},
			expectErrs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateUserInput(&tt.user)
			if len(errs) != tt.expectErrs {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectErrs, len(errs), errs)
			}
		})
	}
}

func TestValidateUserInput_NormalizesEmail(t *testing.T) {
	user := model.User{
		Name:  "Jane Smith",
		Email: " Jane@Example.COM ",
		Role:  model.RoleUser,
	}

	if errs := ValidateUserInput(&user); len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}
}

func TestValidateAssetInput(t *testing.T) {
	owner := uuid.New()
	serial := "SN-1"
	blankSerial := "  "

	tests := []struct {
		name       string
		asset      model.Asset
		expectErrs int
	}{
		{
			name:       "Valid minimal asset",
			asset:      model.Asset{Type: model.AssetTypeLaptop},
			expectErrs: 0,
		},
		{
			name:       "Missing type",
			asset:      model.Asset{},
			expectErrs: 1,
		},
		{
			name:       "Unknown type",
			asset:      model.Asset{Type: "hoverboard"},
			expectErrs: 1,
		},
		{
			name:       "Unknown status",
			asset:      model.Asset{Type: model.AssetTypeMobile, Status: "lost"},
			expectErrs: 1,
		},
		{
			name: "Owner without assigned status",
			asset: model.Asset{
				Type:       model.AssetTypeMobile,
				AssignedTo: &owner,
				Status:     model.AssetStatusApproved,
			},
			expectErrs: 1,
		},
		{
			name: "Owner with assigned status",
			asset: model.Asset{
				Type:       model.AssetTypeMobile,
				AssignedTo: &owner,
				Status:     model.AssetStatusAssigned,
			},
			expectErrs: 0,
		},
		{
			name:       "Valid serial",
			asset:      model.Asset{Type: model.AssetTypeLaptop, SerialNumber: &serial},
			expectErrs: 0,
		},
		{
			name:       "Blank serial",
			asset:      model.Asset{Type: model.AssetTypeLaptop, SerialNumber: &blankSerial},
			expectErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateAssetInput(&tt.asset)
			if len(errs) != tt.expectErrs {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectErrs, len(errs), errs)
			}
		})
	}
}

func TestValidateAssetRequestInput(t *testing.T) {
	tests := []struct {
		name       string
		request    model.AssetRequest
		expectErrs int
	}{
		{
			name: "Valid request",
			request: model.AssetRequest{
				UserID:         uuid.New(),
				AssetType:      model.AssetTypeLaptop,
				RequestDetails: "Laptop for new hire",
			},
			expectErrs: 0,
		},
		{
			name: "Missing user",
			request: model.AssetRequest{
				AssetType:      model.AssetTypeLaptop,
				RequestDetails: "Laptop for new hire",
			},
			expectErrs: 1,
		},
		{
			name: "Unknown asset type",
			request: model.AssetRequest{
				UserID:         uuid.New(),
				AssetType:      "hoverboard",
				RequestDetails: "details",
			},
			expectErrs: 1,
		},
		{
			name: "Missing details",
			request: model.AssetRequest{
				UserID:    uuid.New(),
				AssetType: model.AssetTypeMobile,
			},
			expectErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateAssetRequestInput(&tt.request)
			if len(errs) != tt.expectErrs {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectErrs, len(errs), errs)
			}
		})
	}
}

func TestValidateConsentFormInput(t *testing.T) {
	valid := model.ConsentForm{
		UserID:  uuid.New(),
		AssetID: uuid.New(),
		Content: "Equipment handover agreement",
	}
	if errs := ValidateConsentFormInput(&valid); len(errs) != 0 {
		t.Errorf("Unexpected errors: %v", errs)
	}

	empty := model.ConsentForm{}
	if errs := ValidateConsentFormInput(&empty); len(errs) != 3 {
		t.Errorf("Expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateTerminationInput(t *testing.T) {
	tests := []struct {
		name        string
		termination model.TerminationRequest
		expectErrs  int
	}{
		{
			name: "Valid termination",
			termination: model.TerminationRequest{
				UserID: uuid.New(),
				Reason: "Employment ended",
				CollectedAssets: []model.CollectedAsset{
					{AssetID: uuid.New()},
				},
			},
			expectErrs: 0,
		},
		{
			name: "Empty checklist",
			termination: model.TerminationRequest{
				UserID: uuid.New(),
				Reason: "Employment ended",
			},
			expectErrs: 1,
		},
		{
			name: "Checklist entry without asset",
			termination: model.TerminationRequest{
				UserID: uuid.New(),
				Reason: "Employment ended",
				CollectedAssets: []model.CollectedAsset{
					{AssetID: uuid.Nil},
				},
			},
			expectErrs: 1,
		},
		{
			name:        "Everything missing",
			termination: model.TerminationRequest{},
			expectErrs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTerminationInput(&tt.termination)
			if len(errs) != tt.expectErrs {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectErrs, len(errs), errs)
			}
		})
	}
}
