package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"asset-management-api/internal/model"
	"asset-management-api/internal/notification"
	"asset-management-api/internal/repository"
)

// Mock implementations for testing

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	CreateUserFunc     func(ctx context.Context, user model.User) error
	GetAllUsersFunc    func(ctx context.Context) ([]model.User, error)
	GetUserByIDFunc    func(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	UpdateUserFunc     func(ctx context.Context, id uuid.UUID, user model.User) error
	DeactivateUserFunc func(ctx context.Context, id uuid.UUID) error
	DeleteUserFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user model.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetAllUsers(ctx context.Context) ([]model.User, error) {
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc(ctx)
	}
	return []model.User{}, nil
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, user model.User) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, user)
	}
	return nil
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if m.DeactivateUserFunc != nil {
		return m.DeactivateUserFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// MockAssetRepository is a mock implementation of repository.AssetRepository
type MockAssetRepository struct {
	CreateAssetFunc          func(ctx context.Context, asset model.Asset) error
	GetAllAssetsFunc         func(ctx context.Context) ([]model.Asset, error)
	GetAssetByIDFunc         func(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	UpdateAssetFunc          func(ctx context.Context, id uuid.UUID, asset model.Asset) error
	DeleteAssetFunc          func(ctx context.Context, id uuid.UUID) error
	GetAssetsByAssigneeFunc  func(ctx context.Context, userID uuid.UUID) ([]model.Asset, error)
	GetAssetBySerialFunc     func(ctx context.Context, serialNumber string) (*model.Asset, error)
	GetProvisioningQueueFunc func(ctx context.Context, assetType *model.AssetType) ([]model.Asset, error)
	ProvisionAssetFunc       func(ctx context.Context, id uuid.UUID, serialNumber string, assetModel *string) error
	ClearAssignmentFunc      func(ctx context.Context, id uuid.UUID) error

	// Track cleared assets for verification
	mu      sync.Mutex
	Cleared []uuid.UUID
}

func (m *MockAssetRepository) CreateAsset(ctx context.Context, asset model.Asset) error {
	if m.CreateAssetFunc != nil {
		return m.CreateAssetFunc(ctx, asset)
	}
	return nil
}

func (m *MockAssetRepository) GetAllAssets(ctx context.Context) ([]model.Asset, error) {
	if m.GetAllAssetsFunc != nil {
		return m.GetAllAssetsFunc(ctx)
	}
	return []model.Asset{}, nil
}

func (m *MockAssetRepository) GetAssetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	if m.GetAssetByIDFunc != nil {
		return m.GetAssetByIDFunc(ctx, id)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, id uuid.UUID, asset model.Asset) error {
	if m.UpdateAssetFunc != nil {
		return m.UpdateAssetFunc(ctx, id, asset)
	}
	return nil
}

func (m *MockAssetRepository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if m.DeleteAssetFunc != nil {
		return m.DeleteAssetFunc(ctx, id)
	}
	return nil
}

func (m *MockAssetRepository) GetAssetsByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Asset, error) {
	if m.GetAssetsByAssigneeFunc != nil {
		return m.GetAssetsByAssigneeFunc(ctx, userID)
	}
	return []model.Asset{}, nil
}

func (m *MockAssetRepository) GetAssetBySerial(ctx context.Context, serialNumber string) (*model.Asset, error) {
	if m.GetAssetBySerialFunc != nil {
		return m.GetAssetBySerialFunc(ctx, serialNumber)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *MockAssetRepository) GetProvisioningQueue(ctx context.Context, assetType *model.AssetType) ([]model.Asset, error) {
	if m.GetProvisioningQueueFunc != nil {
		return m.GetProvisioningQueueFunc(ctx, assetType)
	}
	return []model.Asset{}, nil
}

func (m *MockAssetRepository) ProvisionAsset(ctx context.Context, id uuid.UUID, serialNumber string, assetModel *string) error {
	if m.ProvisionAssetFunc != nil {
		return m.ProvisionAssetFunc(ctx, id, serialNumber, assetModel)
	}
	return nil
}

func (m *MockAssetRepository) ClearAssignment(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.Cleared = append(m.Cleared, id)
	m.mu.Unlock()
	if m.ClearAssignmentFunc != nil {
		return m.ClearAssignmentFunc(ctx, id)
	}
	return nil
}

// ClearedAssets returns a copy of the IDs passed to ClearAssignment.
func (m *MockAssetRepository) ClearedAssets() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uuid.UUID, len(m.Cleared))
	copy(out, m.Cleared)
	return out
}

// MockRequestRepository is a mock implementation of repository.AssetRequestRepository
type MockRequestRepository struct {
	CreateRequestFunc     func(ctx context.Context, request model.AssetRequest) error
	GetAllRequestsFunc    func(ctx context.Context) ([]model.AssetRequest, error)
	GetRequestByIDFunc    func(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error)
	GetRequestsByUserFunc func(ctx context.Context, userID uuid.UUID) ([]model.AssetRequest, error)
	UpdateRequestFunc     func(ctx context.Context, id uuid.UUID, request model.AssetRequest) error
}

func (m *MockRequestRepository) CreateRequest(ctx context.Context, request model.AssetRequest) error {
	if m.CreateRequestFunc != nil {
		return m.CreateRequestFunc(ctx, request)
	}
	return nil
}

func (m *MockRequestRepository) GetAllRequests(ctx context.Context) ([]model.AssetRequest, error) {
	if m.GetAllRequestsFunc != nil {
		return m.GetAllRequestsFunc(ctx)
	}
	return []model.AssetRequest{}, nil
}

func (m *MockRequestRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	if m.GetRequestByIDFunc != nil {
		return m.GetRequestByIDFunc(ctx, id)
	}
	return nil, repository.ErrRequestNotFound
}

func (m *MockRequestRepository) GetRequestsByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetRequest, error) {
	if m.GetRequestsByUserFunc != nil {
		return m.GetRequestsByUserFunc(ctx, userID)
	}
	return []model.AssetRequest{}, nil
}

func (m *MockRequestRepository) UpdateRequest(ctx context.Context, id uuid.UUID, request model.AssetRequest) error {
	if m.UpdateRequestFunc != nil {
		return m.UpdateRequestFunc(ctx, id, request)
	}
	return nil
}

// MockConsentRepository is a mock implementation of repository.ConsentFormRepository
type MockConsentRepository struct {
	CreateFormFunc     func(ctx context.Context, form model.ConsentForm) error
	GetAllFormsFunc    func(ctx context.Context) ([]model.ConsentForm, error)
	GetFormByIDFunc    func(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error)
	GetFormsByUserFunc func(ctx context.Context, userID uuid.UUID) ([]model.ConsentForm, error)
	UpdateFormFunc     func(ctx context.Context, id uuid.UUID, form model.ConsentForm) error
}

func (m *MockConsentRepository) CreateForm(ctx context.Context, form model.ConsentForm) error {
	if m.CreateFormFunc != nil {
		return m.CreateFormFunc(ctx, form)
	}
	return nil
}

func (m *MockConsentRepository) GetAllForms(ctx context.Context) ([]model.ConsentForm, error) {
	if m.GetAllFormsFunc != nil {
		return m.GetAllFormsFunc(ctx)
	}
	return []model.ConsentForm{}, nil
}

func (m *MockConsentRepository) GetFormByID(ctx context.Context, id uuid.UUID) (*model.ConsentForm, error) {
	if m.GetFormByIDFunc != nil {
		return m.GetFormByIDFunc(ctx, id)
	}
	return nil, repository.ErrConsentFormNotFound
}

func (m *MockConsentRepository) GetFormsByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentForm, error) {
	if m.GetFormsByUserFunc != nil {
		return m.GetFormsByUserFunc(ctx, userID)
	}
	return []model.ConsentForm{}, nil
}

func (m *MockConsentRepository) UpdateForm(ctx context.Context, id uuid.UUID, form model.ConsentForm) error {
	if m.UpdateFormFunc != nil {
		return m.UpdateFormFunc(ctx, id, form)
	}
	return nil
}

// MockTerminationRepository is a mock implementation of repository.TerminationRepository
type MockTerminationRepository struct {
	CreateTerminationFunc  func(ctx context.Context, termination model.TerminationRequest) error
	GetAllTerminationsFunc func(ctx context.Context) ([]model.TerminationRequest, error)
	GetTerminationByIDFunc func(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error)
	UpdateTerminationFunc  func(ctx context.Context, id uuid.UUID, termination model.TerminationRequest) error
	SetAssetCollectedFunc  func(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error
}

func (m *MockTerminationRepository) CreateTermination(ctx context.Context, termination model.TerminationRequest) error {
	if m.CreateTerminationFunc != nil {
		return m.CreateTerminationFunc(ctx, termination)
	}
	return nil
}

func (m *MockTerminationRepository) GetAllTerminations(ctx context.Context) ([]model.TerminationRequest, error) {
	if m.GetAllTerminationsFunc != nil {
		return m.GetAllTerminationsFunc(ctx)
	}
	return []model.TerminationRequest{}, nil
}

func (m *MockTerminationRepository) GetTerminationByID(ctx context.Context, id uuid.UUID) (*model.TerminationRequest, error) {
	if m.GetTerminationByIDFunc != nil {
		return m.GetTerminationByIDFunc(ctx, id)
	}
	return nil, repository.ErrTerminationNotFound
}

func (m *MockTerminationRepository) UpdateTermination(ctx context.Context, id uuid.UUID, termination model.TerminationRequest) error {
	if m.UpdateTerminationFunc != nil {
		return m.UpdateTerminationFunc(ctx, id, termination)
	}
	return nil
}

func (m *MockTerminationRepository) SetAssetCollected(ctx context.Context, terminationID, assetID uuid.UUID, collectorSignature string) error {
	if m.SetAssetCollectedFunc != nil {
		return m.SetAssetCollectedFunc(ctx, terminationID, assetID, collectorSignature)
	}
	return nil
}

// MockNotifier is a mock implementation of notification.Notifier
type MockNotifier struct {
	SendNotificationFunc func(n notification.Notification) error

	mu   sync.Mutex
	Sent []notification.Notification
}

func (m *MockNotifier) SendNotification(n notification.Notification) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, n)
	m.mu.Unlock()
	if m.SendNotificationFunc != nil {
		return m.SendNotificationFunc(n)
	}
	return nil
}

func (m *MockNotifier) SendNotificationWithContext(ctx context.Context, n notification.Notification) error {
	return m.SendNotification(n)
}

func (m *MockNotifier) IsHealthy(ctx context.Context) bool {
	return true
}
