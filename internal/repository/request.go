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

var ErrRequestNotFound = errors.New("asset request not found")

// AssetRequestRepository is an interface for interacting with asset requests.
type AssetRequestRepository interface {
	CreateRequest(ctx context.Context, request model.AssetRequest) error
	GetAllRequests(ctx context.Context) ([]model.AssetRequest, error)
	GetRequestByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error)
	GetRequestsByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetRequest, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, request model.AssetRequest) error
}

type assetRequestRepository struct {
	DB *sql.DB
}

// NewAssetRequestRepository creates a new AssetRequestRepository.
func NewAssetRequestRepository(db *sql.DB) AssetRequestRepository {
	return &assetRequestRepository{DB: db}
}

const requestColumns = `id, user_id, asset_type, request_details, status, request_date, approved_by_it, approved_by_management, notes, is_replacement`

func scanRequest(row interface{ Scan(...interface{}) error }) (*model.AssetRequest, error) {
	var req model.AssetRequest
	err := row.Scan(&req.ID, &req.UserID, &req.AssetType, &req.RequestDetails,
		&req.Status, &req.RequestDate, &req.ApprovedByIT, &req.ApprovedByManagement,
		&req.Notes, &req.IsReplacement)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest adds a new asset request.
func (r *assetRequestRepository) CreateRequest(ctx context.Context, request model.AssetRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO asset_requests (id, user_id, asset_type, request_details, status, request_date, approved_by_it, approved_by_management, notes, is_replacement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.AssetType,
		request.RequestDetails,
		request.Status,
		request.RequestDate,
		request.ApprovedByIT,
		request.ApprovedByManagement,
		request.Notes,
		request.IsReplacement,
	)

	if err != nil {
		return fmt.Errorf("failed to create asset request: %w", err)
	}

	return nil
}

// GetAllRequests retrieves all asset requests.
func (r *assetRequestRepository) GetAllRequests(ctx context.Context) ([]model.AssetRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM asset_requests ORDER BY request_date DESC`

	return r.queryRequests(ctx, query)
}

// GetRequestByID retrieves a single asset request by its ID.
func (r *assetRequestRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM asset_requests WHERE id = $1`

	request, err := scanRequest(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get asset request by ID: %w", err)
	}
	return request, nil
}

// GetRequestsByUser retrieves all asset requests submitted by a user.
func (r *assetRequestRepository) GetRequestsByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM asset_requests WHERE user_id = $1 ORDER BY request_date DESC`

	return r.queryRequests(ctx, query, userID)
}

// UpdateRequest replaces the stored record matching the id.
func (r *assetRequestRepository) UpdateRequest(ctx context.Context, id uuid.UUID, request model.AssetRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE asset_requests
		SET status = $1, approved_by_it = $2, approved_by_management = $3, notes = $4
		WHERE id = $5`

	result, err := r.DB.ExecContext(ctx, query,
		request.Status,
		request.ApprovedByIT,
		request.ApprovedByManagement,
		request.Notes,
		id,
	)

	if err != nil {
		return fmt.Errorf("failed to update asset request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *assetRequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]model.AssetRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset requests: %w", err)
	}
	defer rows.Close()

	var requests []model.AssetRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return requests, nil
}
