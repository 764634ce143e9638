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
	ErrAssetNotFound   = errors.New("asset not found")
	ErrDuplicateSerial = errors.New("asset with this serial number already exists")
)

// AssetRepository is an interface for interacting with asset records.
type AssetRepository interface {
	CreateAsset(ctx context.Context, asset model.Asset) error
	GetAllAssets(ctx context.Context) ([]model.Asset, error)
	GetAssetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, asset model.Asset) error
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	GetAssetsByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Asset, error)
	GetAssetBySerial(ctx context.Context, serialNumber string) (*model.Asset, error)
	GetProvisioningQueue(ctx context.Context, assetType *model.AssetType) ([]model.Asset, error)
	ProvisionAsset(ctx context.Context, id uuid.UUID, serialNumber string, assetModel *string) error
	ClearAssignment(ctx context.Context, id uuid.UUID) error
}

type assetRepository struct {
	DB *sql.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{DB: db}
}

const assetColumns = `id, type, serial_number, model, details, assigned_to, assigned_date, status, created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (*model.Asset, error) {
	var a model.Asset
	err := row.Scan(&a.ID, &a.Type, &a.SerialNumber, &a.Model, &a.Details,
		&a.AssignedTo, &a.AssignedDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAsset adds a new asset to the registry.
func (r *assetRepository) CreateAsset(ctx context.Context, asset model.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO assets (id, type, serial_number, model, details, assigned_to, assigned_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		asset.ID,
		asset.Type,
		asset.SerialNumber,
		asset.Model,
		asset.Details,
		asset.AssignedTo,
		asset.AssignedDate,
		asset.Status,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w", ErrDuplicateSerial)
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetAllAssets retrieves all assets from the registry.
func (r *assetRepository) GetAllAssets(ctx context.Context) ([]model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY created_at`

	return r.queryAssets(ctx, query)
}

// GetAssetByID retrieves a single asset by its ID.
func (r *assetRepository) GetAssetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

	asset, err := scanAsset(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}
	return asset, nil
}

// UpdateAsset replaces the stored record matching the id.
func (r *assetRepository) UpdateAsset(ctx context.Context, id uuid.UUID, asset model.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE assets
		SET type = $1, serial_number = $2, model = $3, details = $4,
		    assigned_to = $5, assigned_date = $6, status = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8`

	result, err := r.DB.ExecContext(ctx, query,
		asset.Type,
		asset.SerialNumber,
		asset.Model,
		asset.Details,
		asset.AssignedTo,
		asset.AssignedDate,
		asset.Status,
		id,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w", ErrDuplicateSerial)
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// DeleteAsset deletes an asset from the registry.
func (r *assetRepository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `DELETE FROM assets WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// GetAssetsByAssignee retrieves all assets assigned to a specific user.
func (r *assetRepository) GetAssetsByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE assigned_to = $1 ORDER BY created_at`

	return r.queryAssets(ctx, query, userID)
}

// GetAssetBySerial retrieves an asset by its serial number (support lookup).
func (r *assetRepository) GetAssetBySerial(ctx context.Context, serialNumber string) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE serial_number = $1`

	asset, err := scanAsset(r.DB.QueryRowContext(ctx, query, serialNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by serial: %w", err)
	}
	return asset, nil
}

// GetProvisioningQueue retrieves assets still missing a serial number,
// optionally filtered by type. This is the IT provisioning work queue.
func (r *assetRepository) GetProvisioningQueue(ctx context.Context, assetType *model.AssetType) ([]model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if assetType != nil {
		query := `SELECT ` + assetColumns + ` FROM assets WHERE serial_number IS NULL AND type = $1 ORDER BY created_at`
		return r.queryAssets(ctx, query, *assetType)
	}

	query := `SELECT ` + assetColumns + ` FROM assets WHERE serial_number IS NULL ORDER BY created_at`
	return r.queryAssets(ctx, query)
}

// ProvisionAsset records the IT-issued serial number and optional model.
func (r *assetRepository) ProvisionAsset(ctx context.Context, id uuid.UUID, serialNumber string, assetModel *string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE assets
		SET serial_number = $1, model = COALESCE($2, model), updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`

	result, err := r.DB.ExecContext(ctx, query, serialNumber, assetModel, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w", ErrDuplicateSerial)
		}
		return fmt.Errorf("failed to provision asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

// ClearAssignment removes the owner from an asset and marks it returned.
// Used by the termination workflow once collection completes.
func (r *assetRepository) ClearAssignment(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE assets
		SET assigned_to = NULL, assigned_date = NULL, status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`

	result, err := r.DB.ExecContext(ctx, query, model.AssetStatusReturned, id)
	if err != nil {
		return fmt.Errorf("failed to clear asset assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

func (r *assetRepository) queryAssets(ctx context.Context, query string, args ...interface{}) ([]model.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return assets, nil
}
