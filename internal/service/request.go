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

// RequestService runs the asset-request state machine:
// pending -> approved or pending -> rejected, both terminal.
type RequestService struct {
	requests repository.AssetRequestRepository
	notifier notification.Notifier
	logger   *log.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests repository.AssetRequestRepository, notifier notification.Notifier, logger *log.Logger) *RequestService {
	if logger == nil {
		logger = log.Default()
	}
	return &RequestService{
		requests: requests,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateRequest submits a new asset request. The status is forced to pending
// and the request date to now regardless of caller input.
func (s *RequestService) CreateRequest(ctx context.Context, request model.AssetRequest) (*model.AssetRequest, error) {
	if validationErrors := validation.ValidateAssetRequestInput(&request); len(validationErrors) > 0 {
		return nil, errors.ValidationError(strings.Join(validationErrors, "; "))
	}

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = model.RequestStatusPending
	request.RequestDate = time.Now()
	request.ApprovedByIT = false
	request.ApprovedByManagement = false
	request.Notes = nil

	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, errors.DatabaseError("failed to create asset request", err)
	}

	s.logger.Printf("Asset request created: ID=%s, user=%s, type=%s, replacement=%t",
		request.ID, request.UserID, request.AssetType, request.IsReplacement)

	return &request, nil
}

// GetAllRequests retrieves every asset request.
func (s *RequestService) GetAllRequests(ctx context.Context) ([]model.AssetRequest, error) {
	requests, err := s.requests.GetAllRequests(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve asset requests", err)
	}
	return requests, nil
}

// GetRequestByID retrieves a single asset request.
func (s *RequestService) GetRequestByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	request, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrRequestNotFound) {
			return nil, errors.NotFoundError("asset request")
		}
		return nil, errors.DatabaseError("failed to retrieve asset request", err)
	}
	return request, nil
}

// GetRequestsByUser retrieves a user's own asset requests.
func (s *RequestService) GetRequestsByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetRequest, error) {
	requests, err := s.requests.GetRequestsByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve asset requests", err)
	}
	return requests, nil
}

// ApproveRequest transitions a pending request to approved. Empty notes keep
// the prior notes value unchanged.
func (s *RequestService) ApproveRequest(ctx context.Context, id uuid.UUID, notes string) (*model.AssetRequest, error) {
	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status.Terminal() {
		return nil, errors.InvalidStateError(fmt.Sprintf("asset request is already %s", request.Status))
	}

	request.Status = model.RequestStatusApproved
	if strings.TrimSpace(notes) != "" {
		request.Notes = &notes
	}

	if err := s.requests.UpdateRequest(ctx, id, *request); err != nil {
		return nil, errors.DatabaseError("failed to approve asset request", err)
	}

	go s.notifyDecision(notification.EventRequestApproved, notification.LevelInfo, request)

	s.logger.Printf("Asset request approved: ID=%s", id)

	return request, nil
}

// RejectRequest transitions a pending request to rejected. A non-empty reason
// is required; validation failure leaves the request untouched.
func (s *RequestService) RejectRequest(ctx context.Context, id uuid.UUID, notes string) (*model.AssetRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, errors.ValidationError("a rejection reason is required")
	}

	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status.Terminal() {
		return nil, errors.InvalidStateError(fmt.Sprintf("asset request is already %s", request.Status))
	}

	request.Status = model.RequestStatusRejected
	request.Notes = &notes

	if err := s.requests.UpdateRequest(ctx, id, *request); err != nil {
		return nil, errors.DatabaseError("failed to reject asset request", err)
	}

	go s.notifyDecision(notification.EventRequestRejected, notification.LevelWarning, request)

	s.logger.Printf("Asset request rejected: ID=%s", id)

	return request, nil
}

// SetITApproval records IT's sub-approval on a still-pending request.
func (s *RequestService) SetITApproval(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	return s.setSubApproval(ctx, id, func(r *model.AssetRequest) { r.ApprovedByIT = true })
}

// SetManagementApproval records management's sub-approval on a still-pending request.
func (s *RequestService) SetManagementApproval(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	return s.setSubApproval(ctx, id, func(r *model.AssetRequest) { r.ApprovedByManagement = true })
}

func (s *RequestService) setSubApproval(ctx context.Context, id uuid.UUID, mark func(*model.AssetRequest)) (*model.AssetRequest, error) {
	request, err := s.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status.Terminal() {
		return nil, errors.InvalidStateError(fmt.Sprintf("asset request is already %s", request.Status))
	}

	mark(request)

	if err := s.requests.UpdateRequest(ctx, id, *request); err != nil {
		return nil, errors.DatabaseError("failed to record sub-approval", err)
	}

	return request, nil
}

func (s *RequestService) notifyDecision(event notification.Event, level notification.Level, request *model.AssetRequest) {
	n := notification.Notification{
		Level:   level,
		Event:   event,
		Message: fmt.Sprintf("Asset request %s for user %s (%s) was decided", request.ID, request.UserID, request.AssetType),
		Metadata: map[string]string{
			"request_id":     request.ID.String(),
			"user_id":        request.UserID.String(),
			"asset_type":     string(request.AssetType),
			"is_replacement": fmt.Sprintf("%t", request.IsReplacement),
		},
	}

	if err := s.notifier.SendNotification(n); err != nil {
		s.logger.Printf("Failed to send %s notification for request %s: %v", event, request.ID, err)
	}
}
