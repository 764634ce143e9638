package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-management-api/internal/model"
	"asset-management-api/internal/repository"
	"asset-management-api/pkg/errors"
)

func pendingTermination(assetCount int) *model.TerminationRequest {
	termination := &model.TerminationRequest{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Reason:      "Employment ended",
		RequestDate: time.Now().Add(-time.Hour),
		Status:      model.RequestStatusPending,
	}
	for i := 0; i < assetCount; i++ {
		termination.CollectedAssets = append(termination.CollectedAssets, model.CollectedAsset{
			AssetID: uuid.New(),
		})
	}
	return termination
}

func terminationRepoFor(termination *model.TerminationRequest) *MockTerminationRepository {
	return &MockTerminationRepository{
		GetTerminationByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
			if id != termination.ID {
				return nil, repository.ErrTerminationNotFound
			}
			snapshot := *termination
			snapshot.CollectedAssets = append([]model.CollectedAsset(nil), termination.CollectedAssets...)
			return &snapshot, nil
		},
	}
}

func TestTerminationService_CreateTermination_ResetsChecklist(t *testing.T) {
	var stored model.TerminationRequest
	terminations := &MockTerminationRepository{
		CreateTerminationFunc: func(ctx context.Context, termination model.TerminationRequest) error {
			stored = termination
			return nil
		},
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	signature := "pre-signed"
	input := model.TerminationRequest{
		UserID: uuid.New(),
		Reason: "Resignation effective end of month",
		Status: model.RequestStatusApproved,
		CollectedAssets: []model.CollectedAsset{
			{AssetID: uuid.New(), Collected: true, CollectorSignature: &signature},
			{AssetID: uuid.New()},
		},
		ManagementApproval: true,
	}

	created, err := svc.CreateTermination(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.RequestStatusPending, stored.Status)
	assert.False(t, stored.ManagementApproval)
	require.Len(t, stored.CollectedAssets, 2)
	for _, entry := range stored.CollectedAssets {
		assert.False(t, entry.Collected)
		assert.Nil(t, entry.CollectorSignature)
	}
}

func TestTerminationService_CreateTermination_RequiresAssets(t *testing.T) {
	svc := NewTerminationService(&MockTerminationRepository{}, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.CreateTermination(context.Background(), model.TerminationRequest{
		UserID: uuid.New(),
		Reason: "Contract expired",
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeValidation, appErr.Code)
}

func TestTerminationService_ApproveTermination(t *testing.T) {
	termination := pendingTermination(2)
	terminations := terminationRepoFor(termination)

	var updated model.TerminationRequest
	terminations.UpdateTerminationFunc = func(ctx context.Context, id uuid.UUID, tr model.TerminationRequest) error {
		updated = tr
		return nil
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	result, err := svc.ApproveTermination(context.Background(), termination.ID)
	require.NoError(t, err)

	assert.Equal(t, model.RequestStatusApproved, result.Status)
	assert.True(t, result.ManagementApproval)
	assert.Equal(t, model.RequestStatusApproved, updated.Status)
	assert.True(t, updated.ManagementApproval, "approval implies management sign-off")
}

func TestTerminationService_ApproveTermination_AlreadyDecided(t *testing.T) {
	termination := pendingTermination(1)
	termination.Status = model.RequestStatusRejected
	terminations := terminationRepoFor(termination)

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.ApproveTermination(context.Background(), termination.ID)
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeInvalidState, appErr.Code)
}

func TestTerminationService_RejectTermination(t *testing.T) {
	termination := pendingTermination(1)
	terminations := terminationRepoFor(termination)

	var updated model.TerminationRequest
	terminations.UpdateTerminationFunc = func(ctx context.Context, id uuid.UUID, tr model.TerminationRequest) error {
		updated = tr
		return nil
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	result, err := svc.RejectTermination(context.Background(), termination.ID, "duplicate record")
	require.NoError(t, err)

	assert.Equal(t, model.RequestStatusRejected, result.Status)
	require.NotNil(t, updated.HandoverNotes)
	assert.Equal(t, "duplicate record", *updated.HandoverNotes)
	assert.False(t, updated.ManagementApproval)
}

func TestTerminationService_RejectTermination_RequiresReason(t *testing.T) {
	lookedUp := false
	terminations := &MockTerminationRepository{
		GetTerminationByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
			lookedUp = true
			return pendingTermination(1), nil
		},
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.RejectTermination(context.Background(), uuid.New(), "")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeValidation, appErr.Code)
	assert.False(t, lookedUp)
}

func TestTerminationService_MarkAssetCollected_PartialProgress(t *testing.T) {
	termination := pendingTermination(2)
	termination.Status = model.RequestStatusApproved
	termination.ManagementApproval = true
	termination.CollectedAssets[0].Collected = true

	assetID := termination.CollectedAssets[0].AssetID
	terminations := terminationRepoFor(termination)
	terminations.SetAssetCollectedFunc = func(ctx context.Context, terminationID, aID uuid.UUID, collectorSignature string) error {
		assert.Equal(t, termination.ID, terminationID)
		assert.Equal(t, assetID, aID)
		assert.Equal(t, "K. Jones", collectorSignature)
		return nil
	}

	assets := &MockAssetRepository{}
	svc := NewTerminationService(terminations, assets, &MockNotifier{}, testLogger())

	result, err := svc.MarkAssetCollected(context.Background(), termination.ID, assetID, "K. Jones")
	require.NoError(t, err)

	assert.False(t, result.AllCollected())
	assert.Empty(t, assets.ClearedAssets(), "assignments stay until the full checklist is collected")
}

func TestTerminationService_MarkAssetCollected_LastAssetReleasesAll(t *testing.T) {
	termination := pendingTermination(3)
	termination.Status = model.RequestStatusApproved
	termination.ManagementApproval = true
	for i := range termination.CollectedAssets {
		termination.CollectedAssets[i].Collected = true
	}

	terminations := terminationRepoFor(termination)
	assets := &MockAssetRepository{}
	svc := NewTerminationService(terminations, assets, &MockNotifier{}, testLogger())

	lastAsset := termination.CollectedAssets[2].AssetID
	result, err := svc.MarkAssetCollected(context.Background(), termination.ID, lastAsset, "K. Jones")
	require.NoError(t, err)

	assert.True(t, result.AllCollected())

	cleared := assets.ClearedAssets()
	require.Len(t, cleared, 3)
	want := map[uuid.UUID]bool{}
	for _, entry := range termination.CollectedAssets {
		want[entry.AssetID] = true
	}
	for _, id := range cleared {
		assert.True(t, want[id], "unexpected asset released: %s", id)
	}
}

func TestTerminationService_MarkAssetCollected_ReleaseSurvivesMissingAsset(t *testing.T) {
	termination := pendingTermination(2)
	for i := range termination.CollectedAssets {
		termination.CollectedAssets[i].Collected = true
	}

	terminations := terminationRepoFor(termination)
	missing := termination.CollectedAssets[0].AssetID
	assets := &MockAssetRepository{
		ClearAssignmentFunc: func(ctx context.Context, id uuid.UUID) error {
			if id == missing {
				return repository.ErrAssetNotFound
			}
			return nil
		},
	}

	svc := NewTerminationService(terminations, assets, &MockNotifier{}, testLogger())

	_, err := svc.MarkAssetCollected(context.Background(), termination.ID, termination.CollectedAssets[1].AssetID, "K. Jones")
	require.NoError(t, err)

	assert.Len(t, assets.ClearedAssets(), 2, "a missing registry entry must not stop the rest")
}

func TestTerminationService_MarkAssetCollected_NotFound(t *testing.T) {
	terminations := &MockTerminationRepository{
		SetAssetCollectedFunc: func(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error {
			return repository.ErrTerminationNotFound
		},
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.MarkAssetCollected(context.Background(), uuid.New(), uuid.New(), "K. Jones")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeNotFound, appErr.Code)
}

func TestTerminationService_MarkAssetCollected_AssetNotOnChecklist(t *testing.T) {
	terminations := &MockTerminationRepository{
		SetAssetCollectedFunc: func(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error {
			return repository.ErrCollectedAssetNotFound
		},
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.MarkAssetCollected(context.Background(), uuid.New(), uuid.New(), "K. Jones")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeNotFound, appErr.Code)
	assert.Equal(t, "asset on termination checklist not found", appErr.Message)
}

func TestTerminationService_MarkAssetCollected_EmptySignature(t *testing.T) {
	marked := false
	terminations := &MockTerminationRepository{
		SetAssetCollectedFunc: func(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error {
			marked = true
			return nil
		},
	}

	svc := NewTerminationService(terminations, &MockAssetRepository{}, &MockNotifier{}, testLogger())

	_, err := svc.MarkAssetCollected(context.Background(), uuid.New(), uuid.New(), "  ")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCodeValidation, appErr.Code)
	assert.False(t, marked)
}
