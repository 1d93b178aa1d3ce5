/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc Service, exp Exporter) *gin.Engine {
    if cfg.App.Env != "dev" {
        gin.SetMode(gin.ReleaseMode)
    }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context) {
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })

    h := NewHandlers(cfg, log, svc, exp)

    r.GET("/health", h.Health)

    projects := r.Group("/projects")
    projects.GET("/tracker", h.TrackerProjects)
    projects.GET("/default", h.DefaultProjects)

    reports := r.Group("/reports")
    reports.POST("/generate", h.Generate)
    reports.POST("/generate/status", h.GenerateStatus)

    return r
}
