package service

import (
	"context"

	"hellbingo/events"
	"hellbingo/models"

	"github.com/stretchr/testify/mock"
)

// MockCampaignResultRepository is a mock implementation of CampaignResultRepository
type MockCampaignResultRepository struct {
	mock.Mock
}

func (m *MockCampaignResultRepository) Save(ctx context.Context, result *models.CampaignResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockCampaignResultRepository) GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CampaignResult), args.Error(1)
}

func (m *MockCampaignResultRepository) GetStats(ctx context.Context) (*models.CampaignStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CampaignStats), args.Error(1)
}

// MockEmitter is a mock implementation of events.Emitter for testing
type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
