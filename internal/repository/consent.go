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

var ErrConsentFormNotFound = errors.New("consent form not found")

// ConsentFormRepository is an interface for interacting with consent forms.
type ConsentFormRepository interface {
	CreateForm(ctx context.Context, form model.ConsentForm) error
	GetAllForms(ctx context.Context) ([]model.ConsentForm, error)
	GetFormByID(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error)
	GetFormsByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentForm, error)
	UpdateForm(ctx context.Context, id uuid.UUID, form model.ConsentForm) error
}

type consentFormRepository struct {
	DB *sql.DB
}

// NewConsentFormRepository creates a new ConsentFormRepository.
func NewConsentFormRepository(db *sql.DB) ConsentFormRepository {
	return &consentFormRepository{DB: db}
}

const consentColumns = `id, user_id, asset_id, sent, signed, date_created, date_signed, content, signature, admin_approved, management_approved`

func scanConsentForm(row interface{ Scan(...interface{}) error }) (*model.ConsentForm, error) {
	var f model.ConsentForm
	err := row.Scan(&f.ID, &f.UserID, &f.AssetID, &f.Sent, &f.Signed,
		&f.DateCreated, &f.DateSigned, &f.Content, &f.Signature,
		&f.AdminApproved, &f.ManagementApproved)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateForm adds a new consent form.
func (r *consentFormRepository) CreateForm(ctx context.Context, form model.ConsentForm) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO consent_forms (id, user_id, asset_id, sent, signed, date_created, date_signed, content, signature, admin_approved, management_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(ctx, query,
		form.ID,
		form.UserID,
		form.AssetID,
		form.Sent,
		form.Signed,
		form.DateCreated,
		form.DateSigned,
		form.Content,
		form.Signature,
		form.AdminApproved,
		form.ManagementApproved,
	)

	if err != nil {
		return fmt.Errorf("failed to create consent form: %w", err)
	}

	return nil
}

// GetAllForms retrieves all consent forms.
func (r *consentFormRepository) GetAllForms(ctx context.Context) ([]model.ConsentForm, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + consentColumns + ` FROM consent_forms ORDER BY date_created DESC`

	return r.queryForms(ctx, query)
}

// GetFormByID retrieves a single consent form by its ID.
func (r *consentFormRepository) GetFormByID(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + consentColumns + ` FROM consent_forms WHERE id = $1`

	form, err := scanConsentForm(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrConsentFormNotFound
		}
		return nil, fmt.Errorf("failed to get consent form by ID: %w", err)
	}
	return form, nil
}

// GetFormsByUser retrieves all consent forms targeting a user.
func (r *consentFormRepository) GetFormsByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentForm, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT ` + consentColumns + ` FROM consent_forms WHERE user_id = $1 ORDER BY date_created DESC`

	return r.queryForms(ctx, query, userID)
}

// UpdateForm replaces the stored record matching the id.
func (r *consentFormRepository) UpdateForm(ctx context.Context, id uuid.UUID, form model.ConsentForm) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE consent_forms
		SET sent = $1, signed = $2, date_signed = $3, signature = $4,
		    admin_approved = $5, management_approved = $6
		WHERE id = $7`

	result, err := r.DB.ExecContext(ctx, query,
		form.Sent,
		form.Signed,
		form.DateSigned,
		form.Signature,
		form.AdminApproved,
		form.ManagementApproved,
		id,
	)

	if err != nil {
		return fmt.Errorf("failed to update consent form: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrConsentFormNotFound
	}

	return nil
}

func (r *consentFormRepository) queryForms(ctx context.Context, query string, args ...interface{}) ([]model.ConsentForm, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query consent forms: %w", err)
	}
	defer rows.Close()

	var forms []model.ConsentForm
	for rows.Next() {
		form, err := scanConsentForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consent form: %w", err)
		}
		forms = append(forms, *form)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return forms, nil
}
