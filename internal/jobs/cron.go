/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jobs

import (
    "context"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "sync/atomic"
    "time"

    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/HamedShams/tracker-report/internal/services"
    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

type service interface {
    Generate(ctx context.Context, req services.ReportRequest) (*domain.Report, error)
}

type exporter interface {
    WriteFile(path string, rep *domain.Report) error
}

// ErrBusy is returned when a scheduled report is already being generated.
var ErrBusy = errors.New("report already in progress")

// Cron generates the previous month's report on the configured schedule.
type Cron struct {
    cfg     config.Config
    log     zerolog.Logger
    svc     service
    exp     exporter
    loc     *time.Location
    c       *cron.Cron
    now     func() time.Time
    running atomic.Bool

    ctx    context.Context
    cancel context.CancelFunc
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service, exp exporter) (*Cron, error) {
    loc := cfg.Location()
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    ctx, cancel := context.WithCancel(context.Background())
    cr := &Cron{cfg: cfg, log: log, svc: svc, exp: exp, loc: loc, c: c, now: time.Now, ctx: ctx, cancel: cancel}
    if _, err := c.AddFunc(cfg.Report.Cron, cr.monthly); err != nil {
        cancel()
        return nil, fmt.Errorf("report.cron %q: %w", cfg.Report.Cron, err)
    }
    return cr, nil
}

func (cr *Cron) Start() { cr.c.Start() }

// Stop cancels a running report and waits for it to return.
func (cr *Cron) Stop() {
    cr.cancel()
    <-cr.c.Stop().Done()
}

func (cr *Cron) monthly() {
    path, err := cr.RunPreviousMonth(cr.ctx)
    switch {
    case errors.Is(err, ErrBusy):
        cr.log.Info().Msg("cron: previous report still running, skipping")
    case errors.Is(err, services.ErrNoData):
        cr.log.Info().Msg("cron: no data for previous month")
    case err != nil:
        cr.log.Error().Err(err).Msg("cron: monthly report failed")
    default:
        cr.log.Info().Str("file", path).Msg("cron: monthly report written")
    }
}

// RunPreviousMonth generates the report for the calendar month before now
// and writes it into the output directory.
func (cr *Cron) RunPreviousMonth(ctx context.Context) (string, error) {
    if !cr.running.CompareAndSwap(false, true) {
        return "", ErrBusy
    }
    defer cr.running.Store(false)

    p := domain.PeriodOf(cr.now(), cr.loc).Prev()
    cr.log.Info().Str("period", p.String()).Msg("cron: monthly report")
    rep, err := cr.svc.Generate(ctx, services.ReportRequest{From: p, To: p})
    if err != nil {
        return "", err
    }
    if err := os.MkdirAll(cr.cfg.Report.OutputDir, 0o755); err != nil {
        return "", fmt.Errorf("create output dir: %w", err)
    }
    path := filepath.Join(cr.cfg.Report.OutputDir, rep.Filename())
    if err := cr.exp.WriteFile(path, rep); err != nil {
        return "", fmt.Errorf("write %s: %w", path, err)
    }
    return path, nil
}
