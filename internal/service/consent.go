package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"asset-management-api/internal/model"
	"asset-management-api/internal/notification"
	"asset-management-api/internal/repository"
	"asset-management-api/pkg/errors"
	"asset-management-api/pkg/validation"
)

// ConsentService runs the consent-form workflow. The flags are independently
// settable, but signing strictly requires the form to have been sent first.
type ConsentService struct {
	forms    repository.ConsentFormRepository
	notifier notification.Notifier
	logger   *log.Logger
}

// NewConsentService creates a new ConsentService.
func NewConsentService(forms repository.ConsentFormRepository, notifier notification.Notifier, logger *log.Logger) *ConsentService {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsentService{
		forms:    forms,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateForm creates a consent form. All workflow flags start false and the
// creation date is set to now regardless of caller input.
func (s *ConsentService) CreateForm(ctx context.Context, form model.ConsentForm) (*model.ConsentForm, error) {
	if validationErrors := validation.ValidateConsentFormInput(&form); len(validationErrors) > 0 {
		return nil, errors.ValidationError(strings.Join(validationErrors, "; "))
	}

	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	form.Sent = false
	form.Signed = false
	form.AdminApproved = false
	form.ManagementApproved = false
	form.DateCreated = time.Now()
	form.DateSigned = nil
	form.Signature = nil

	if err := s.forms.CreateForm(ctx, form); err != nil {
		return nil, errors.DatabaseError("failed to create consent form", err)
	}

	s.logger.Printf("Consent form created: ID=%s, user=%s, asset=%s", form.ID, form.UserID, form.AssetID)

	return &form, nil
}

// GetAllForms retrieves every consent form.
func (s *ConsentService) GetAllForms(ctx context.Context) ([]model.ConsentForm, error) {
	forms, err := s.forms.GetAllForms(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve consent forms", err)
	}
	return forms, nil
}

// GetFormByID retrieves a single consent form.
func (s *ConsentService) GetFormByID(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error) {
	form, err := s.forms.GetFormByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrConsentFormNotFound) {
			return nil, errors.NotFoundError("consent form")
		}
		return nil, errors.DatabaseError("failed to retrieve consent form", err)
	}
	return form, nil
}

// GetFormsByUser retrieves the consent forms targeting a user.
func (s *ConsentService) GetFormsByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentForm, error) {
	forms, err := s.forms.GetFormsByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve consent forms", err)
	}
	return forms, nil
}

// SendForm marks a form as sent to its target user. Sending twice is a no-op.
func (s *ConsentService) SendForm(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error) {
	form, err := s.GetFormByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Sent = true

	if err := s.forms.UpdateForm(ctx, id, *form); err != nil {
		return nil, errors.DatabaseError("failed to send consent form", err)
	}

	s.logger.Printf("Consent form sent: ID=%s", id)

	return form, nil
}

// SignForm records the target user's digital signature. Only the form's
// target user may sign; the form must have been sent first and cannot be
// signed twice.
func (s *ConsentService) SignForm(ctx context.Context, id uuid.UUID, signerID uuid.UUID, signature string) (*model.ConsentForm, error) {
	if err := validation.ValidateSignature(signature); err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	form, err := s.GetFormByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.UserID != signerID {
		return nil, errors.ForbiddenError("only the form's target user can sign it")
	}
	if !form.Sent {
		return nil, errors.InvalidStateError("consent form has not been sent yet")
	}
	if form.Signed {
		return nil, errors.InvalidStateError("consent form is already signed")
	}

	now := time.Now()
	form.Signed = true
	form.Signature = &signature
	form.DateSigned = &now

	if err := s.forms.UpdateForm(ctx, id, *form); err != nil {
		return nil, errors.DatabaseError("failed to sign consent form", err)
	}

	s.logger.Printf("Consent form signed: ID=%s", id)

	return form, nil
}

// ApproveForm records one role's sign-off. Admin and management each set only
// their own flag; full approval is the derived conjunction of both.
func (s *ConsentService) ApproveForm(ctx context.Context, id uuid.UUID, role model.Role) (*model.ConsentForm, error) {
	form, err := s.GetFormByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case model.RoleAdmin:
		form.AdminApproved = true
	case model.RoleManagement:
		form.ManagementApproved = true
	default:
		return nil, errors.ForbiddenError(fmt.Sprintf("role %s cannot approve consent forms", role))
	}

	if err := s.forms.UpdateForm(ctx, id, *form); err != nil {
		return nil, errors.DatabaseError("failed to approve consent form", err)
	}

	s.logger.Printf("Consent form approved by %s: ID=%s", role, id)

	if form.FullyApproved() {
		go s.notifyFullyApproved(form)
	}

	return form, nil
}

func (s *ConsentService) notifyFullyApproved(form *model.ConsentForm) {
	n := notification.Notification{
		Level:   notification.LevelInfo,
		Event:   notification.EventConsentFullySigned,
		Message: fmt.Sprintf("Consent form %s for asset %s is fully approved", form.ID, form.AssetID),
		Metadata: map[string]string{
			"form_id":  form.ID.String(),
			"user_id":  form.UserID.String(),
			"asset_id": form.AssetID.String(),
		},
	}

	if err := s.notifier.SendNotification(n); err != nil {
		s.logger.Printf("Failed to send consent approval notification for form %s: %v", form.ID, err)
	}
}
