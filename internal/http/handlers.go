/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/HamedShams/tracker-report/internal/adapters/excel"
    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/HamedShams/tracker-report/internal/services"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

type Service interface {
    Generate(ctx context.Context, req services.ReportRequest) (*domain.Report, error)
    Validate(req services.ReportRequest) (services.ReportRequest, error)
    Projects(ctx context.Context) ([]domain.Project, error)
    DefaultProjects() []string
}

type Exporter interface {
    Bytes(rep *domain.Report) ([]byte, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc Service
    exp Exporter
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc Service, exp Exporter) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc, exp: exp}
}

type reportRequest struct {
    StartYear  int      `json:"start_year" binding:"required,min=1"`
    StartMonth int      `json:"start_month" binding:"required,min=1,max=12"`
    EndYear    int      `json:"end_year" binding:"required,min=1"`
    EndMonth   int      `json:"end_month" binding:"required,min=1,max=12"`
    Projects   []string `json:"projects"`
}

func (r reportRequest) toService() services.ReportRequest {
    return services.ReportRequest{
        From:     domain.Period{Year: r.StartYear, Month: time.Month(r.StartMonth)},
        To:       domain.Period{Year: r.EndYear, Month: time.Month(r.EndMonth)},
        Projects: r.Projects,
    }
}

type statusResponse struct {
    Success    bool     `json:"success"`
    TasksCount int      `json:"tasks_count"`
    Filename   string   `json:"filename,omitempty"`
    Projects   []string `json:"projects,omitempty"`
    Error      string   `json:"error,omitempty"`
}

func (h *Handlers) Health(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "status":    "healthy",
        "name":      h.cfg.App.Name,
        "version":   h.cfg.App.Version,
        "timestamp": time.Now().UTC(),
    })
}

func (h *Handlers) TrackerProjects(c *gin.Context) {
    ps, err := h.svc.Projects(c.Request.Context())
    if err != nil {
        h.log.Error().Err(err).Msg("list tracker projects failed")
        c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"projects": ps, "total": len(ps)})
}

func (h *Handlers) DefaultProjects(c *gin.Context) {
    ps := h.svc.DefaultProjects()
    if ps == nil {
        ps = []string{}
    }
    c.JSON(http.StatusOK, gin.H{"projects": ps, "source": "config"})
}

func (h *Handlers) Generate(c *gin.Context) {
    var body reportRequest
    if err := c.ShouldBindJSON(&body); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    rep, err := h.svc.Generate(c.Request.Context(), body.toService())
    switch {
    case errors.Is(err, services.ErrInvalidPeriod), errors.Is(err, services.ErrNoProjects):
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    case errors.Is(err, services.ErrNoData):
        c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
        return
    case err != nil:
        h.log.Error().Err(err).Msg("report generation failed")
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    b, err := h.exp.Bytes(rep)
    if err != nil {
        h.log.Error().Err(err).Msg("report export failed")
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rep.Filename()))
    c.Header("X-Tasks-Count", strconv.Itoa(len(rep.Rows)))
    c.Data(http.StatusOK, excel.ContentType, b)
}

// GenerateStatus validates a report request and returns the planned file
// name without contacting the tracker.
func (h *Handlers) GenerateStatus(c *gin.Context) {
    var body reportRequest
    if err := c.ShouldBindJSON(&body); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    req, err := h.svc.Validate(body.toService())
    if err != nil {
        c.JSON(http.StatusOK, statusResponse{Success: false, Error: err.Error()})
        return
    }
    c.JSON(http.StatusOK, statusResponse{
        Success:  true,
        Filename: domain.ReportFilename(req.From, req.To),
        Projects: req.Projects,
    })
}
