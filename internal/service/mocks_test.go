package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"habitat-portal-backend/internal/domain"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByAuthUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type MockUnitRepo struct{ mock.Mock }

func (m *MockUnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUnitRepo) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnitRepo) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error) {
	args := m.Called(ctx, buildingID)
	if u := args.Get(0); u != nil {
		return u.([]domain.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnitRepo) List(ctx context.Context) ([]domain.Unit, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUnitRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportRepo struct{ mock.Mock }

func (m *MockReportRepo) Create(ctx context.Context, r *domain.Report) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepo) List(ctx context.Context, buildingID string, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, buildingID, limit)
	if r := args.Get(0); r != nil {
		return r.([]domain.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepo) Watch(ctx context.Context, buildingID string, limit int) (<-chan []domain.Report, error) {
	args := m.Called(ctx, buildingID, limit)
	if ch := args.Get(0); ch != nil {
		return ch.(chan []domain.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepo) Resolve(ctx context.Context, id, resolution string) error {
	return m.Called(ctx, id, resolution).Error(0)
}

func (m *MockReportRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBuildingRepo struct{ mock.Mock }

func (m *MockBuildingRepo) Create(ctx context.Context, b *domain.Building) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBuildingRepo) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBuildingRepo) ListActive(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]domain.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBuildingRepo) List(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]domain.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBuildingRepo) Update(ctx context.Context, b *domain.Building) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBuildingRepo) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDocumentRepo struct{ mock.Mock }

func (m *MockDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepo) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Document, error) {
	args := m.Called(ctx, buildingID)
	if d := args.Get(0); d != nil {
		return d.([]domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthProvider struct{ mock.Mock }

func (m *MockAuthProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}

func (m *MockAuthProvider) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	return m.Called(ctx, uid, disabled).Error(0)
}

func (m *MockAuthProvider) SignOut(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

type MockObjectStorage struct{ mock.Mock }

func (m *MockObjectStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, path, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) SignedDownloadURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, path, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Exists(ctx context.Context, path string) (bool, int64, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockObjectStorage) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}
