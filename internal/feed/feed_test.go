package feed

import (
	"context"
	"sync"

	"habitat-portal-backend/internal/domain"
)

// fakeUserRepo answers display-name lookups from a map and counts calls.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
	calls int
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.WrapError(domain.ErrNotFound, "no user %s", id)
}

func (f *fakeUserRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) GetByAuthUID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error)   { return nil, nil }
func (f *fakeUserRepo) Update(context.Context, *domain.User) error    { return nil }
func (f *fakeUserRepo) SetActive(context.Context, string, bool) error { return nil }

// fakeReportRepo serves a fixed result set and hands Watch callers a channel
// the test pushes into.
type fakeReportRepo struct {
	mu         sync.Mutex
	reports    []domain.Report
	watch      chan []domain.Report
	watchLimit int
}

func (f *fakeReportRepo) List(_ context.Context, buildingID string, limit int) ([]domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Report, 0, len(f.reports))
	for _, r := range f.reports {
		if buildingID != "" && r.BuildingID != buildingID {
			continue
		}
		out = append(out, r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReportRepo) Watch(_ context.Context, _ string, limit int) (<-chan []domain.Report, error) {
	f.mu.Lock()
	f.watchLimit = limit
	f.mu.Unlock()
	return f.watch, nil
}

func (f *fakeReportRepo) Create(context.Context, *domain.Report) error { return nil }

func (f *fakeReportRepo) GetByID(context.Context, string) (*domain.Report, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeReportRepo) Resolve(context.Context, string, string) error { return nil }
func (f *fakeReportRepo) Delete(context.Context, string) error          { return nil }
