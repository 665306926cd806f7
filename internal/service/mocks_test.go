package service

import (
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func newMetrics() *metrics.Metrics { return metrics.New() }

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CountCases(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.PropertyRepository
type mockPropertyRepo struct{ mock.Mock }

func (m *mockPropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyRepo) GetByToken(ctx context.Context, token string) (*model.Property, error) {
	args := m.Called(ctx, token)
	if p, ok := args.Get(0).(*model.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Property, error) {
	args := m.Called(ctx, id, updates)
	if p, ok := args.Get(0).(*model.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Property, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Property)
	return list, args.Error(1)
}

func (m *mockPropertyRepo) CountByOwner(ctx context.Context, userID int64, status model.PropertyStatus) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPropertyRepo) CountByCategory(ctx context.Context, userID int64) (map[model.Category]int64, error) {
	args := m.Called(ctx, userID)
	counts, _ := args.Get(0).(map[model.Category]int64)
	return counts, args.Error(1)
}

func (m *mockPropertyRepo) LogScan(ctx context.Context, scan *model.ScanLog) error {
	return m.Called(ctx, scan).Error(0)
}

var _ repo.PropertyRepository = (*mockPropertyRepo)(nil)

// мок для repo.CustodyRepository
type mockCustodyRepo struct{ mock.Mock }

func (m *mockCustodyRepo) LatestLog(ctx context.Context, propertyID string) (*model.CustodyLog, error) {
	args := m.Called(ctx, propertyID)
	if l, ok := args.Get(0).(*model.CustodyLog); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustodyRepo) ListLogs(ctx context.Context, propertyID string) ([]model.CustodyLog, error) {
	args := m.Called(ctx, propertyID)
	logs, _ := args.Get(0).([]model.CustodyLog)
	return logs, args.Error(1)
}

func (m *mockCustodyRepo) Transfer(ctx context.Context, log *model.CustodyLog, newLocation string) error {
	return m.Called(ctx, log, newLocation).Error(0)
}

var _ repo.CustodyRepository = (*mockCustodyRepo)(nil)

// мок для repo.DisposalRepository
type mockDisposalRepo struct{ mock.Mock }

func (m *mockDisposalRepo) GetByPropertyID(ctx context.Context, propertyID string) (*model.Disposal, error) {
	args := m.Called(ctx, propertyID)
	if d, ok := args.Get(0).(*model.Disposal); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDisposalRepo) Dispose(ctx context.Context, d *model.Disposal) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}

var _ repo.DisposalRepository = (*mockDisposalRepo)(nil)
