package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"asset-management-api/internal/model"
)

var (
	ErrTerminationNotFound    = errors.New("termination request not found")
	ErrCollectedAssetNotFound = errors.New("asset not listed on termination request")
)

// TerminationRepository is an interface for interacting with termination
// requests and their asset-collection checklists.
type TerminationRepository interface {
	CreateTermination(ctx context.Context, termination model.TerminationRequest) error
	GetAllTerminations(ctx context.Context) ([]model.TerminationRequest, error)
	GetTerminationByID(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error)
	UpdateTermination(ctx context.Context, id uuid.UUID, termination model.TerminationRequest) error
	SetAssetCollected(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error
}

type terminationRepository struct {
	DB *sql.DB
}

// NewTerminationRepository creates a new TerminationRepository.
func NewTerminationRepository(db *sql.DB) TerminationRepository {
	return &terminationRepository{DB: db}
}

// CreateTermination inserts the termination record and its collection
// checklist in one transaction.
func (r *terminationRepository) CreateTermination(ctx context.Context, termination model.TerminationRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO termination_requests (id, user_id, reason, request_date, status, handover_notes, management_approval)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.ExecContext(ctx, query,
		termination.ID,
		termination.UserID,
		termination.Reason,
		termination.RequestDate,
		termination.Status,
		termination.HandoverNotes,
		termination.ManagementApproval,
	)
	if err != nil {
		return fmt.Errorf("failed to create termination request: %w", err)
	}

	entryQuery := `
		INSERT INTO termination_assets (termination_id, asset_id, collected, collector_signature)
		VALUES ($1, $2, $3, $4)`

	for _, entry := range termination.CollectedAssets {
		_, err = tx.ExecContext(ctx, entryQuery,
			termination.ID,
			entry.AssetID,
			entry.Collected,
			entry.CollectorSignature,
		)
		if err != nil {
			return fmt.Errorf("failed to create termination asset entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit termination request: %w", err)
	}

	return nil
}

// GetAllTerminations retrieves all termination requests with their checklists.
func (r *terminationRepository) GetAllTerminations(ctx context.Context) ([]model.TerminationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, reason, request_date, status, handover_notes, management_approval
		FROM termination_requests
		ORDER BY request_date DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query termination requests: %w", err)
	}
	defer rows.Close()

	var terminations []model.TerminationRequest
	for rows.Next() {
		var t model.TerminationRequest
		if err := rows.Scan(&t.ID, &t.UserID, &t.Reason, &t.RequestDate, &t.Status, &t.HandoverNotes, &t.ManagementApproval); err != nil {
			return nil, fmt.Errorf("failed to scan termination request: %w", err)
		}
		terminations = append(terminations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range terminations {
		entries, err := r.getCollectedAssets(ctx, terminations[i].ID)
		if err != nil {
			return nil, err
		}
		terminations[i].CollectedAssets = entries
	}

	return terminations, nil
}

// GetTerminationByID retrieves a single termination request with its checklist.
func (r *terminationRepository) GetTerminationByID(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, reason, request_date, status, handover_notes, management_approval
		FROM termination_requests
		WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, id)

	var t model.TerminationRequest
	if err := row.Scan(&t.ID, &t.UserID, &t.Reason, &t.RequestDate, &t.Status, &t.HandoverNotes, &t.ManagementApproval); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTerminationNotFound
		}
		return nil, fmt.Errorf("failed to get termination request by ID: %w", err)
	}

	entries, err := r.getCollectedAssets(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.CollectedAssets = entries

	return &t, nil
}

// UpdateTermination updates the workflow fields of a termination request.
// The collection checklist is mutated through SetAssetCollected only.
func (r *terminationRepository) UpdateTermination(ctx context.Context, id uuid.UUID, termination model.TerminationRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE termination_requests
		SET status = $1, handover_notes = $2, management_approval = $3
		WHERE id = $4`

	result, err := r.DB.ExecContext(ctx, query,
		termination.Status,
		termination.HandoverNotes,
		termination.ManagementApproval,
		id,
	)

	if err != nil {
		return fmt.Errorf("failed to update termination request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTerminationNotFound
	}

	return nil
}

// SetAssetCollected marks a checklist entry collected and records the
// collector's signature. Reports which half of the lookup failed.
func (r *terminationRepository) SetAssetCollected(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE termination_assets
		SET collected = TRUE, collector_signature = $1
		WHERE termination_id = $2 AND asset_id = $3`

	result, err := r.DB.ExecContext(ctx, query, collectorSignature, terminationID, assetID)
	if err != nil {
		return fmt.Errorf("failed to mark asset collected: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Distinguish a missing termination from a missing checklist entry.
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM termination_requests WHERE id = $1)`
		if err := r.DB.QueryRowContext(ctx, checkQuery, terminationID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check termination existence: %w", err)
		}
		if !exists {
			return ErrTerminationNotFound
		}
		return ErrCollectedAssetNotFound
	}

	return nil
}

func (r *terminationRepository) getCollectedAssets(ctx context.Context, terminationID uuid.UUID) ([]model.CollectedAsset, error) {
	query := `
		SELECT asset_id, collected, collector_signature
		FROM termination_assets
		WHERE termination_id = $1
		ORDER BY asset_id`

	rows, err := r.DB.QueryContext(ctx, query, terminationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query termination assets: %w", err)
	}
	defer rows.Close()

	var entries []model.CollectedAsset
	for rows.Next() {
		var e model.CollectedAsset
		if err := rows.Scan(&e.AssetID, &e.Collected, &e.CollectorSignature); err != nil {
			return nil, fmt.Errorf("failed to scan termination asset: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
