package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/triggerlab/trigger-crm/internal/entity"
	"github.com/triggerlab/trigger-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) ListByUser(ctx context.Context, userID string) ([]entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, userID string, lead *entity.Lead) error {
	args := m.Called(ctx, userID, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, userID, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	args := m.Called(ctx, userID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CreateBatch(ctx context.Context, userID string, leads []entity.Lead) error {
	args := m.Called(ctx, userID, leads)
	return args.Error(0)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.Profile, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

// MockAISettingsRepository
type MockAISettingsRepository struct {
	mock.Mock
}

func (m *MockAISettingsRepository) Get(ctx context.Context, userID string) (*entity.AISettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AISettings), args.Error(1)
}

func (m *MockAISettingsRepository) Upsert(ctx context.Context, settings *entity.AISettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockSheetFetcher
type MockSheetFetcher struct {
	mock.Mock
}

func (m *MockSheetFetcher) FetchCSV(ctx context.Context, shareURL string) (string, error) {
	args := m.Called(ctx, shareURL)
	return args.String(0), args.Error(1)
}

// MockDispatchProducer
type MockDispatchProducer struct {
	mock.Mock
}

func (m *MockDispatchProducer) PublishDispatch(ctx context.Context, payload queue.DispatchPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
