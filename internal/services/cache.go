/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "sync"

    "github.com/HamedShams/tracker-report/internal/analysis"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/rs/zerolog"
    "golang.org/x/sync/singleflight"
)

// runCache is a read-through cache for one report run. Concurrent misses on
// the same key share a single tracker call.
type runCache struct {
    tracker Tracker
    log     zerolog.Logger
    group   singleflight.Group

    changelogs sync.Map // key -> []domain.StatusChangeEvent
    summaries  sync.Map // key -> *domain.TaskSummary
}

func newRunCache(t Tracker, log zerolog.Logger) *runCache {
    return &runCache{tracker: t, log: log}
}

// Changelog returns the normalised status history of key. A failed fetch
// degrades to an empty history and is cached as such.
func (c *runCache) Changelog(ctx context.Context, key string) []domain.StatusChangeEvent {
    if v, ok := c.changelogs.Load(key); ok {
        return v.([]domain.StatusChangeEvent)
    }
    v, _, _ := c.group.Do("changelog:"+key, func() (any, error) {
        if v, ok := c.changelogs.Load(key); ok {
            return v, nil
        }
        recs, err := c.tracker.Changelog(ctx, key)
        if err != nil {
            c.log.Warn().Err(err).Str("task", key).Msg("report: changelog unavailable, using current status only")
            recs = nil
        }
        events := analysis.NormalizeChangelog(recs)
        c.changelogs.Store(key, events)
        return events, nil
    })
    return v.([]domain.StatusChangeEvent)
}

// TaskSummary implements analysis.SummaryLookup. Absent tasks are cached;
// errors are not.
func (c *runCache) TaskSummary(ctx context.Context, key string) (*domain.TaskSummary, error) {
    if v, ok := c.summaries.Load(key); ok {
        return v.(*domain.TaskSummary), nil
    }
    v, err, _ := c.group.Do("summary:"+key, func() (any, error) {
        if v, ok := c.summaries.Load(key); ok {
            return v, nil
        }
        s, err := c.tracker.TaskSummary(ctx, key)
        if err != nil {
            return nil, err
        }
        c.summaries.Store(key, s)
        return s, nil
    })
    if err != nil {
        return nil, err
    }
    return v.(*domain.TaskSummary), nil
}
