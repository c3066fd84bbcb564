package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/repository"
	"habitat-portal-backend/internal/security"
	"habitat-portal-backend/internal/service"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) (string, error) {
	return f.uid, f.err
}

type fakeIdentity struct {
	profile *domain.Profile
	err     error
}

func (f *fakeIdentity) Resolve(context.Context, string) (*domain.Profile, error) {
	return f.profile, f.err
}

type fakeReports struct {
	submitted  *domain.Report
	submitErr  error
	resolveErr error
	deleteErr  error
	listed     []domain.Report

	// Recorded by List so tests can assert the scope each handler asked for.
	listBuilding string
	listLimit    int
}

func (f *fakeReports) Submit(_ context.Context, p *domain.Profile, targetUnitID, body string) (*domain.Report, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = &domain.Report{
		BuildingID: p.BuildingID,
		UserID:     p.UserID,
		TargetUnit: targetUnitID,
		Body:       body,
		Status:     domain.ReportPending,
		Ticket:     "REP-TEST0001",
	}
	return f.submitted, nil
}

func (f *fakeReports) Resolve(context.Context, *domain.Profile, string, string) error {
	return f.resolveErr
}

func (f *fakeReports) Delete(context.Context, *domain.Profile, string) error {
	return f.deleteErr
}

func (f *fakeReports) List(_ context.Context, buildingID string, limit int) ([]domain.Report, error) {
	f.listBuilding = buildingID
	f.listLimit = limit
	out := f.listed
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReports) ReportableUnits(context.Context, *domain.Profile) ([]domain.Unit, error) {
	return nil, nil
}

func residentAPI(reports *fakeReports) *API {
	return NewAPI(
		&fakeVerifier{uid: "uid-1"},
		Services{
			Identity: &fakeIdentity{profile: &domain.Profile{
				UserID: "user-1", Role: domain.RoleResident, BuildingID: "bld-1", Unit: "302",
			}},
			Reports: reports,
		},
		nil,
		nil,
	)
}

func adminAPI(reports *fakeReports) *API {
	return NewAPI(
		&fakeVerifier{uid: "uid-adm"},
		Services{
			Identity: &fakeIdentity{profile: &domain.Profile{
				UserID: "admin-1", Role: domain.RoleAdmin,
			}},
			Reports: reports,
		},
		nil,
		nil,
	)
}

func doRequest(api *API, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		api := NewAPI(&fakeVerifier{err: errors.New("bad token")}, Services{}, nil, nil)
		rec := doRequest(api, http.MethodGet, "/api/v1/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NoProfileIsUnauthorized", func(t *testing.T) {
		api := NewAPI(&fakeVerifier{uid: "ghost"}, Services{
			Identity: &fakeIdentity{err: domain.ErrNoProfile},
		}, nil, nil)
		rec := doRequest(api, http.MethodGet, "/api/v1/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ResolvedProfileReturned", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		rec := doRequest(api, http.MethodGet, "/api/v1/me", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var p domain.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, domain.RoleResident, p.Role)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("ResidentBlockedFromAdmin", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		rec := doRequest(api, http.MethodGet, "/api/v1/admin/reports", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminBlockedFromResident", func(t *testing.T) {
		api := adminAPI(&fakeReports{})
		rec := doRequest(api, http.MethodGet, "/api/v1/my/reports", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSubmitReport(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		reports := &fakeReports{}
		api := residentAPI(reports)
		rec := doRequest(api, http.MethodPost, "/api/v1/my/reports",
			`{"target_unit_id":"unit-2","body":"Ruido excesivo"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "bld-1", reports.submitted.BuildingID)
		assert.Equal(t, "user-1", reports.submitted.UserID)
	})

	t.Run("MissingFields", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		rec := doRequest(api, http.MethodPost, "/api/v1/my/reports", `{"body":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Fields)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		rec := doRequest(api, http.MethodPost, "/api/v1/my/reports", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SelfReportRejected", func(t *testing.T) {
		api := residentAPI(&fakeReports{submitErr: service.ErrSelfReport})
		rec := doRequest(api, http.MethodPost, "/api/v1/my/reports",
			`{"target_unit_id":"unit-own","body":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func newestFirstReports(n int) []domain.Report {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	reports := make([]domain.Report, n)
	for i := range reports {
		reports[i] = domain.Report{
			ID:         fmt.Sprintf("rep-%02d", i),
			BuildingID: "bld-1",
			Body:       "Ruido excesivo",
			Status:     domain.ReportPending,
			CreatedAt:  base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return reports
}

func TestListReportScopes(t *testing.T) {
	t.Run("AdminFeedCappedNewestFirst", func(t *testing.T) {
		reports := &fakeReports{listed: newestFirstReports(30)}
		api := adminAPI(reports)
		rec := doRequest(api, http.MethodGet, "/api/v1/admin/reports?building_id=bld-1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "bld-1", reports.listBuilding)
		assert.Equal(t, repository.AdminFeedLimit, reports.listLimit)

		var got []domain.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, repository.AdminFeedLimit)
		assert.Equal(t, "rep-00", got[0].ID)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt),
				"report %d newer than report %d", i, i-1)
		}
	})

	t.Run("ResidentFeedUncapped", func(t *testing.T) {
		reports := &fakeReports{listed: newestFirstReports(30)}
		api := residentAPI(reports)
		rec := doRequest(api, http.MethodGet, "/api/v1/my/reports", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "bld-1", reports.listBuilding)
		assert.Equal(t, 0, reports.listLimit)

		var got []domain.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 30)
	})
}

func TestStreamScope(t *testing.T) {
	adminClaims := &security.StreamClaims{Role: domain.RoleAdmin}
	residentClaims := &security.StreamClaims{Role: domain.RoleResident, BuildingID: "bld-1"}

	t.Run("AdminPicksBuilding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/streams/reports?building_id=bld-2", nil)
		buildingID, limit := streamScope(adminClaims, req)
		assert.Equal(t, "bld-2", buildingID)
		assert.Equal(t, repository.AdminFeedLimit, limit)
	})

	t.Run("AdminUnscoped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/streams/reports", nil)
		buildingID, limit := streamScope(adminClaims, req)
		assert.Empty(t, buildingID)
		assert.Equal(t, repository.AdminFeedLimit, limit)
	})

	t.Run("ResidentPinnedToOwnBuilding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/streams/reports?building_id=bld-9", nil)
		buildingID, limit := streamScope(residentClaims, req)
		assert.Equal(t, "bld-1", buildingID)
		assert.Equal(t, 0, limit)
	})
}

func TestResolveReport(t *testing.T) {
	t.Run("Resolved", func(t *testing.T) {
		api := adminAPI(&fakeReports{})
		rec := doRequest(api, http.MethodPost, "/api/v1/admin/reports/rep-1/resolve",
			`{"resolution":"Se habló con el residente"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		api := adminAPI(&fakeReports{resolveErr: domain.WrapError(domain.ErrNotFound, "no report")})
		rec := doRequest(api, http.MethodPost, "/api/v1/admin/reports/gone/resolve",
			`{"resolution":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteReport(t *testing.T) {
	t.Run("NonAuthorForbidden", func(t *testing.T) {
		api := residentAPI(&fakeReports{deleteErr: service.ErrNotAuthor})
		rec := doRequest(api, http.MethodDelete, "/api/v1/reports/rep-1", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AuthorDeletes", func(t *testing.T) {
		api := residentAPI(&fakeReports{})
		rec := doRequest(api, http.MethodDelete, "/api/v1/reports/rep-1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", domain.WrapError(domain.ErrNotFound, "x"), http.StatusNotFound},
		{"PermissionDenied", domain.WrapError(domain.ErrPermissionDenied, "x"), http.StatusForbidden},
		{"Conflict", domain.WrapError(domain.ErrConflict, "x"), http.StatusConflict},
		{"Transient", domain.WrapError(domain.ErrTransient, "x"), http.StatusServiceUnavailable},
		{"Unknown", domain.WrapError(domain.ErrUnknown, "x"), http.StatusInternalServerError},
		{"NoProfile", domain.ErrNoProfile, http.StatusUnauthorized},
		{"EmptyResolution", service.ErrEmptyResolution, http.StatusBadRequest},
		{"WrongBuilding", service.ErrWrongBuilding, http.StatusBadRequest},
		{"NotAuthor", service.ErrNotAuthor, http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, c.err)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", bearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", bearerToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, bearerToken(req))
}
