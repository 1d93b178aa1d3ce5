package http

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/HamedShams/tracker-report/internal/services"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type fakeService struct {
    rep      *domain.Report
    err      error
    projects []domain.Project
    defaults []string
    got      services.ReportRequest
}

func (f *fakeService) Generate(_ context.Context, req services.ReportRequest) (*domain.Report, error) {
    f.got = req
    return f.rep, f.err
}

func (f *fakeService) Validate(req services.ReportRequest) (services.ReportRequest, error) {
    if req.To.Before(req.From) {
        return req, services.ErrInvalidPeriod
    }
    if len(req.Projects) == 0 {
        req.Projects = f.defaults
    }
    return req, nil
}

func (f *fakeService) Projects(context.Context) ([]domain.Project, error) {
    return f.projects, f.err
}

func (f *fakeService) DefaultProjects() []string { return f.defaults }

type fakeExporter struct{}

func (fakeExporter) Bytes(*domain.Report) ([]byte, error) { return []byte("xlsx"), nil }

func newTestRouter(svc *fakeService) *gin.Engine {
    cfg := config.Config{App: config.AppConfig{Env: "test", Name: "Tracker Report", Version: "1.2.3"}}
    r := NewRouter(cfg, zerolog.Nop(), svc, fakeExporter{})
    gin.SetMode(gin.TestMode)
    return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
    var buf bytes.Buffer
    if body != nil {
        _ = json.NewEncoder(&buf).Encode(body)
    }
    req := httptest.NewRequest(method, path, &buf)
    req.Header.Set("Content-Type", "application/json")
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    return w
}

func validBody() map[string]any {
    return map[string]any{"start_year": 2025, "start_month": 1, "end_year": 2025, "end_month": 2, "projects": []string{"Ops"}}
}

func TestHealth(t *testing.T) {
    w := do(newTestRouter(&fakeService{}), http.MethodGet, "/health", nil)
    require.Equal(t, http.StatusOK, w.Code)
    var out map[string]any
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
    assert.Equal(t, "healthy", out["status"])
    assert.Equal(t, "1.2.3", out["version"])
}

func TestProjects(t *testing.T) {
    svc := &fakeService{projects: []domain.Project{{ID: "1", Name: "Ops"}}, defaults: []string{"Ops", "Dev"}}
    r := newTestRouter(svc)

    w := do(r, http.MethodGet, "/projects/tracker", nil)
    require.Equal(t, http.StatusOK, w.Code)
    assert.JSONEq(t, `{"projects":[{"id":"1","name":"Ops","description":""}],"total":1}`, w.Body.String())

    w = do(r, http.MethodGet, "/projects/default", nil)
    require.Equal(t, http.StatusOK, w.Code)
    assert.JSONEq(t, `{"projects":["Ops","Dev"],"source":"config"}`, w.Body.String())
}

func TestGenerateReturnsWorkbook(t *testing.T) {
    jan := domain.Period{Year: 2025, Month: time.January}
    feb := domain.Period{Year: 2025, Month: time.February}
    svc := &fakeService{rep: &domain.Report{From: jan, To: feb, Rows: make([]domain.ReportRow, 3)}}
    w := do(newTestRouter(svc), http.MethodPost, "/reports/generate", validBody())

    require.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, "xlsx", w.Body.String())
    assert.Equal(t, "3", w.Header().Get("X-Tasks-Count"))
    assert.Contains(t, w.Header().Get("Content-Disposition"), "Tracker_Report_2025_01-2025_02.xlsx")
    assert.Equal(t, services.ReportRequest{From: jan, To: feb, Projects: []string{"Ops"}}, svc.got)
}

func TestGenerateErrorMapping(t *testing.T) {
    cases := []struct {
        name string
        err  error
        code int
    }{
        {"invalid period", services.ErrInvalidPeriod, http.StatusBadRequest},
        {"no projects", services.ErrNoProjects, http.StatusBadRequest},
        {"no data", services.ErrNoData, http.StatusNotFound},
        {"other", errors.New("boom"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            w := do(newTestRouter(&fakeService{err: tc.err}), http.MethodPost, "/reports/generate", validBody())
            assert.Equal(t, tc.code, w.Code)
        })
    }
}

func TestGenerateRejectsBadBody(t *testing.T) {
    body := validBody()
    body["start_month"] = 13
    w := do(newTestRouter(&fakeService{}), http.MethodPost, "/reports/generate", body)
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateStatus(t *testing.T) {
    r := newTestRouter(&fakeService{defaults: []string{"Ops"}})
    body := validBody()
    delete(body, "projects")
    w := do(r, http.MethodPost, "/reports/generate/status", body)
    require.Equal(t, http.StatusOK, w.Code)
    assert.JSONEq(t, `{"success":true,"tasks_count":0,"filename":"Tracker_Report_2025_01-2025_02.xlsx","projects":["Ops"]}`, w.Body.String())

    body["start_year"] = 2026
    w = do(r, http.MethodPost, "/reports/generate/status", body)
    require.Equal(t, http.StatusOK, w.Code)
    var out statusResponse
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
    assert.False(t, out.Success)
    assert.NotEmpty(t, out.Error)
}
