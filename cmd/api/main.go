/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"

    "github.com/HamedShams/tracker-report/internal/adapters/excel"
    "github.com/HamedShams/tracker-report/internal/adapters/tracker"
    "github.com/HamedShams/tracker-report/internal/config"
    apihttp "github.com/HamedShams/tracker-report/internal/http"
    "github.com/HamedShams/tracker-report/internal/jobs"
    "github.com/HamedShams/tracker-report/internal/logger"
    "github.com/HamedShams/tracker-report/internal/services"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        fmt.Fprintln(os.Stderr, "config:", err)
        os.Exit(1)
    }
    log := logger.New(cfg)

    // Adapters
    tc := tracker.NewClient(cfg.Tracker, log)
    exp := excel.NewExporter(cfg.Location())

    // Services
    svc := services.New(cfg, log, tc)

    // HTTP server (Gin)
    router := apihttp.NewRouter(cfg, log, svc, exp)
    srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

    // Cron
    if cfg.Report.Cron != "" {
        cr, err := jobs.NewCron(cfg, log, svc, exp)
        if err != nil {
            log.Fatal().Err(err).Msg("cron setup failed")
        }
        cr.Start()
        defer cr.Stop()
        log.Info().Str("spec", cfg.Report.Cron).Str("dir", cfg.Report.OutputDir).Msg("monthly report scheduled")
    }

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() {
        log.Info().Str("addr", cfg.HTTP.Addr).Msg("http listening")
        errCh <- srv.ListenAndServe()
    }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Error().Err(err).Msg("http server error")
        }
    }

    ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
    defer cancel()
    if err := srv.Shutdown(ctx); err != nil {
        log.Error().Err(err).Msg("http shutdown failed")
    }
}
