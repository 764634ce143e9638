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

// TerminationService runs the offboarding workflow: management approval plus
// per-asset collection confirmation. Once every listed asset is collected, the
// corresponding registry entries are unassigned and marked returned.
type TerminationService struct {
	terminations repository.TerminationRepository
	assets       repository.AssetRepository
	notifier     notification.Notifier
	logger       *log.Logger
}

// NewTerminationService creates a new TerminationService.
func NewTerminationService(terminations repository.TerminationRepository, assets repository.AssetRepository, notifier notification.Notifier, logger *log.Logger) *TerminationService {
	if logger == nil {
		logger = log.Default()
	}
	return &TerminationService{
		terminations: terminations,
		assets:       assets,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateTermination opens an offboarding record. An explicit, non-empty list
// of assets to collect is required; each entry starts uncollected.
func (s *TerminationService) CreateTermination(ctx context.Context, termination model.TerminationRequest) (*model.TerminationRequest, error) {
	if validationErrors := validation.ValidateTerminationInput(&termination); len(validationErrors) > 0 {
		return nil, errors.ValidationError(strings.Join(validationErrors, "; "))
	}

	if termination.ID == uuid.Nil {
		termination.ID = uuid.New()
	}
	termination.Status = model.RequestStatusPending
	termination.RequestDate = time.Now()
	termination.ManagementApproval = false
	for i := range termination.CollectedAssets {
		termination.CollectedAssets[i].Collected = false
		termination.CollectedAssets[i].CollectorSignature = nil
	}

	if err := s.terminations.CreateTermination(ctx, termination); err != nil {
		return nil, errors.DatabaseError("failed to create termination request", err)
	}

	s.logger.Printf("Termination request created: ID=%s, user=%s, assets=%d",
		termination.ID, termination.UserID, len(termination.CollectedAssets))

	return &termination, nil
}

// GetAllTerminations retrieves every termination request.
func (s *TerminationService) GetAllTerminations(ctx context.Context) ([]model.TerminationRequest, error) {
	terminations, err := s.terminations.GetAllTerminations(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to retrieve termination requests", err)
	}
	return terminations, nil
}

// GetTerminationByID retrieves a single termination request.
func (s *TerminationService) GetTerminationByID(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
	termination, err := s.terminations.GetTerminationByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrTerminationNotFound) {
			return nil, errors.NotFoundError("termination request")
		}
		return nil, errors.DatabaseError("failed to retrieve termination request", err)
	}
	return termination, nil
}

// ApproveTermination approves a pending termination. Approval and the
// management-approval flag move together; there is no approved state without
// management sign-off.
func (s *TerminationService) ApproveTermination(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
	termination, err := s.GetTerminationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if termination.Status.Terminal() {
		return nil, errors.InvalidStateError(fmt.Sprintf("termination request is already %s", termination.Status))
	}

	termination.Status = model.RequestStatusApproved
	termination.ManagementApproval = true

	if err := s.terminations.UpdateTermination(ctx, id, *termination); err != nil {
		return nil, errors.DatabaseError("failed to approve termination request", err)
	}

	go s.notify(notification.EventTerminationApproved, notification.LevelInfo, termination,
		fmt.Sprintf("Termination %s approved for user %s", termination.ID, termination.UserID))

	s.logger.Printf("Termination request approved: ID=%s", id)

	return termination, nil
}

// RejectTermination rejects a pending termination with a required reason.
func (s *TerminationService) RejectTermination(ctx context.Context, id uuid.UUID, reason string) (*model.TerminationRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.ValidationError("a rejection reason is required")
	}

	termination, err := s.GetTerminationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if termination.Status.Terminal() {
		return nil, errors.InvalidStateError(fmt.Sprintf("termination request is already %s", termination.Status))
	}

	termination.Status = model.RequestStatusRejected
	termination.HandoverNotes = &reason

	if err := s.terminations.UpdateTermination(ctx, id, *termination); err != nil {
		return nil, errors.DatabaseError("failed to reject termination request", err)
	}

	s.logger.Printf("Termination request rejected: ID=%s", id)

	return termination, nil
}

// MarkAssetCollected records physical collection of one listed asset along
// with the collector's signature. If either the termination or the checklist
// entry is unknown, the caller gets a not-found error and nothing changes.
// When the last asset is collected, the registry assignments are cleared.
func (s *TerminationService) MarkAssetCollected(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) (*model.TerminationRequest, error) {
	if err := validation.ValidateSignature(collectorSignature); err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	if err := s.terminations.SetAssetCollected(ctx, terminationID, assetID, collectorSignature); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrTerminationNotFound):
			return nil, errors.NotFoundError("termination request")
		case stderrors.Is(err, repository.ErrCollectedAssetNotFound):
			return nil, errors.NotFoundError("asset on termination checklist")
		default:
			return nil, errors.DatabaseError("failed to mark asset collected", err)
		}
	}

	termination, err := s.GetTerminationByID(ctx, terminationID)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("Asset collected: termination=%s, asset=%s", terminationID, assetID)

	if termination.AllCollected() {
		s.releaseAssets(ctx, termination)
		go s.notify(notification.EventTerminationCollected, notification.LevelInfo, termination,
			fmt.Sprintf("All %d assets collected for termination %s", len(termination.CollectedAssets), termination.ID))
	}

	return termination, nil
}

// releaseAssets clears each collected asset's registry assignment. A failure
// on one asset is logged and the rest still proceed; the collection marks
// themselves are already durable.
func (s *TerminationService) releaseAssets(ctx context.Context, termination *model.TerminationRequest) {
	for _, entry := range termination.CollectedAssets {
		if err := s.assets.ClearAssignment(ctx, entry.AssetID); err != nil {
			if stderrors.Is(err, repository.ErrAssetNotFound) {
				s.logger.Printf("Collected asset %s no longer in registry, skipping release", entry.AssetID)
				continue
			}
			s.logger.Printf("Failed to release asset %s after collection: %v", entry.AssetID, err)
		}
	}
}

func (s *TerminationService) notify(event notification.Event, level notification.Level, termination *model.TerminationRequest, message string) {
	n := notification.Notification{
		Level:   level,
		Event:   event,
		Message: message,
		Metadata: map[string]string{
			"termination_id": termination.ID.String(),
			"user_id":        termination.UserID.String(),
		},
	}

	if err := s.notifier.SendNotification(n); err != nil {
		s.logger.Printf("Failed to send %s notification for termination %s: %v", event, termination.ID, err)
	}
}
