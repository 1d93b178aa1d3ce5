/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "context"
    "sync"

    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/rs/zerolog"
)

const DefaultMaxDepth = 32

// SummaryLookup fetches the title and parent of a task. A nil summary with a
// nil error means the task does not exist or is not accessible.
type SummaryLookup interface {
    TaskSummary(ctx context.Context, key string) (*domain.TaskSummary, error)
}

// Hierarchy resolves the root container and nesting depth of tasks.
// Results are memoised per task key for the lifetime of the value.
type Hierarchy struct {
    lookup   SummaryLookup
    log      zerolog.Logger
    maxDepth int

    mu    sync.Mutex
    cache map[string]domain.HierarchyInfo
}

func NewHierarchy(lookup SummaryLookup, log zerolog.Logger, maxDepth int) *Hierarchy {
    if maxDepth <= 0 {
        maxDepth = DefaultMaxDepth
    }
    return &Hierarchy{lookup: lookup, log: log, maxDepth: maxDepth, cache: map[string]domain.HierarchyInfo{}}
}

// Resolve walks the parent chain of task. Lookup failures and missing parents
// truncate the walk and return what was accumulated so far.
func (h *Hierarchy) Resolve(ctx context.Context, task domain.Task) domain.HierarchyInfo {
    if task.ParentKey == "" {
        return domain.HierarchyInfo{Section: domain.LabelContainer, NestingLevel: 0}
    }
    h.mu.Lock()
    if hi, ok := h.cache[task.Key]; ok {
        h.mu.Unlock()
        return hi
    }
    h.mu.Unlock()

    hi := h.walk(ctx, task)

    h.mu.Lock()
    h.cache[task.Key] = hi
    h.mu.Unlock()
    return hi
}

func (h *Hierarchy) walk(ctx context.Context, task domain.Task) domain.HierarchyInfo {
    depth := 0
    root := domain.LabelUnresolved
    visited := map[string]struct{}{task.Key: {}}
    parent := task.ParentKey
    for parent != "" {
        if _, seen := visited[parent]; seen {
            h.log.Warn().Str("task", task.Key).Str("parent", parent).Msg("hierarchy: cycle in parent chain")
            break
        }
        if depth >= h.maxDepth {
            h.log.Warn().Str("task", task.Key).Int("depth", depth).Msg("hierarchy: max depth reached")
            break
        }
        visited[parent] = struct{}{}
        depth++
        sum, err := h.lookup.TaskSummary(ctx, parent)
        if err != nil || sum == nil {
            h.log.Debug().Err(err).Str("task", task.Key).Str("parent", parent).Msg("hierarchy: walk truncated")
            break
        }
        root = sum.Title
        if root == "" {
            root = domain.LabelUntitled
        }
        parent = sum.ParentKey
    }
    return domain.HierarchyInfo{Section: root, NestingLevel: depth}
}
