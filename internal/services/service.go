/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "sync/atomic"
    "time"

    "github.com/HamedShams/tracker-report/internal/analysis"
    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/HamedShams/tracker-report/internal/report"
    "github.com/rs/zerolog"
    "golang.org/x/sync/errgroup"
)

var (
    ErrInvalidPeriod = errors.New("invalid reporting period")
    ErrNoProjects    = errors.New("no projects selected")
    ErrNoData        = errors.New("no data for the selected period")
)

const progressEvery = 50

type Tracker interface {
    ListTasks(ctx context.Context, project string, p domain.Period) ([]domain.RawTask, error)
    Changelog(ctx context.Context, key string) ([]domain.ChangeRecord, error)
    TaskSummary(ctx context.Context, key string) (*domain.TaskSummary, error)
    Projects(ctx context.Context) ([]domain.Project, error)
}

type Service struct {
    cfg     config.Config
    log     zerolog.Logger
    tracker Tracker
    loc     *time.Location
    builder report.Builder
}

func New(cfg config.Config, log zerolog.Logger, tracker Tracker) *Service {
    return &Service{
        cfg:     cfg,
        log:     log,
        tracker: tracker,
        loc:     cfg.Location(),
        builder: report.NewBuilder(cfg.Tracker.WebURL),
    }
}

// ReportRequest selects an inclusive range of months. An empty project list
// falls back to the configured defaults.
type ReportRequest struct {
    From     domain.Period
    To       domain.Period
    Projects []string
}

// DefaultProjects returns a copy of the configured project list.
func (s *Service) DefaultProjects() []string {
    return append([]string(nil), s.cfg.Report.Projects...)
}

// Validate checks the request and fills in default projects. It makes no
// external calls.
func (s *Service) Validate(req ReportRequest) (ReportRequest, error) {
    for _, p := range []domain.Period{req.From, req.To} {
        if _, err := domain.NewPeriod(p.Year, int(p.Month)); err != nil {
            return req, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
        }
    }
    if req.To.Before(req.From) {
        return req, fmt.Errorf("%w: start %s is after end %s", ErrInvalidPeriod, req.From, req.To)
    }
    var projects []string
    seen := map[string]bool{}
    for _, p := range req.Projects {
        p = strings.TrimSpace(p)
        if p == "" || seen[p] {
            continue
        }
        seen[p] = true
        projects = append(projects, p)
    }
    if len(projects) == 0 {
        projects = s.DefaultProjects()
    }
    if len(projects) == 0 {
        return req, ErrNoProjects
    }
    req.Projects = projects
    return req, nil
}

// Projects lists every project visible in the tracker.
func (s *Service) Projects(ctx context.Context) ([]domain.Project, error) {
    return s.tracker.Projects(ctx)
}

// Generate builds the report for every month and project of req. Failures
// scoped to one project-month or one task are logged and skipped; only an
// empty result is reported as ErrNoData.
func (s *Service) Generate(ctx context.Context, req ReportRequest) (*domain.Report, error) {
    req, err := s.Validate(req)
    if err != nil {
        return nil, err
    }
    started := time.Now()
    s.log.Info().Str("from", req.From.String()).Str("to", req.To.String()).Strs("projects", req.Projects).Msg("report: start")

    cache := newRunCache(s.tracker, s.log)
    hier := analysis.NewHierarchy(cache, s.log, s.cfg.Report.MaxDepth)
    var rows []domain.ReportRow
    for _, p := range domain.Months(req.From, req.To) {
        month := analysis.NewMonth(p, s.loc)
        for _, project := range req.Projects {
            raws, err := s.tracker.ListTasks(ctx, project, p)
            if err != nil {
                if ctx.Err() != nil {
                    return nil, ctx.Err()
                }
                s.log.Error().Err(err).Str("project", project).Str("period", p.String()).Msg("report: list tasks failed")
                continue
            }
            s.log.Info().Str("project", project).Str("period", p.String()).Int("tasks", len(raws)).Msg("report: tasks fetched")
            if err := s.prefetch(ctx, cache, raws); err != nil {
                return nil, err
            }
            before := len(rows)
            for _, raw := range raws {
                if row, ok := s.processTask(ctx, cache, hier, raw, project, month); ok {
                    rows = append(rows, row)
                }
            }
            s.log.Debug().Str("project", project).Str("period", p.String()).Int("rows", len(rows)-before).Msg("report: rows built")
        }
    }
    if len(rows) == 0 {
        s.log.Warn().Str("from", req.From.String()).Str("to", req.To.String()).Msg("report: no data")
        return nil, ErrNoData
    }
    rep := report.Assemble(req.From, req.To, rows)
    s.log.Info().Int("rows", len(rows)).Dur("took", time.Since(started)).Msg("report: done")
    return rep, nil
}

// prefetch loads changelogs for raws on a bounded pool so the sequential
// row pass below only hits the cache.
func (s *Service) prefetch(ctx context.Context, cache *runCache, raws []domain.RawTask) error {
    workers := s.cfg.Tracker.Workers
    if workers < 1 {
        workers = 1
    }
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(workers)
    var done atomic.Int64
    total := len(raws)
    for _, raw := range raws {
        if raw.Key == "" {
            continue
        }
        key := raw.Key
        g.Go(func() error {
            cache.Changelog(gctx, key)
            if n := done.Add(1); n%progressEvery == 0 {
                s.log.Info().Int64("done", n).Int("total", total).Msg("report: changelogs fetched")
            }
            return gctx.Err()
        })
    }
    return g.Wait()
}

func (s *Service) processTask(ctx context.Context, cache *runCache, hier *analysis.Hierarchy, raw domain.RawTask, project string, m analysis.Month) (row domain.ReportRow, ok bool) {
    defer func() {
        if r := recover(); r != nil {
            s.log.Error().Str("task", raw.Key).Interface("panic", r).Msg("report: task skipped")
            row, ok = domain.ReportRow{}, false
        }
    }()
    task, err := analysis.ParseTask(raw, project)
    if err != nil {
        s.log.Error().Err(err).Str("task", raw.Key).Msg("report: task skipped")
        return domain.ReportRow{}, false
    }
    task.History = cache.Changelog(ctx, task.Key)
    onFirst, existed := m.StatusOnFirst(task)
    if !m.ShouldInclude(task, onFirst, existed) {
        return domain.ReportRow{}, false
    }
    return s.builder.Build(task, hier.Resolve(ctx, task), m)
}
