/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "errors"
    "fmt"
    "sort"
    "strings"
    "time"

    "github.com/HamedShams/tracker-report/internal/domain"
)

const statusField = "status"

var timeLayouts = []string{
    time.RFC3339Nano,
    time.RFC3339,
    "2006-01-02T15:04:05.000-0700",
    "2006-01-02T15:04:05-0700",
}

// ParseTime parses tracker timestamps and returns them in UTC.
func ParseTime(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, errors.New("empty timestamp")
    }
    for _, l := range timeLayouts {
        if t, err := time.Parse(l, s); err == nil {
            return t.UTC(), nil
        }
    }
    return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseTask converts a raw tracker record into a Task with an empty history.
func ParseTask(raw domain.RawTask, project string) (domain.Task, error) {
    if strings.TrimSpace(raw.Key) == "" {
        return domain.Task{}, errors.New("task without key")
    }
    if strings.TrimSpace(raw.StatusKey) == "" {
        return domain.Task{}, fmt.Errorf("task %s: missing status", raw.Key)
    }
    created, err := ParseTime(raw.CreatedAt)
    if err != nil {
        return domain.Task{}, fmt.Errorf("task %s: created: %w", raw.Key, err)
    }
    updated, err := ParseTime(raw.UpdatedAt)
    if err != nil {
        return domain.Task{}, fmt.Errorf("task %s: updated: %w", raw.Key, err)
    }
    if updated.Before(created) {
        updated = created
    }
    var resolved *time.Time
    if raw.ResolvedAt != "" {
        if r, err := ParseTime(raw.ResolvedAt); err == nil && !r.Before(created) {
            resolved = &r
        }
    }
    assignee := raw.Assignee
    if assignee == "" {
        assignee = domain.LabelUnassigned
    }
    return domain.Task{
        Key:        raw.Key,
        Title:      raw.Summary,
        Project:    project,
        Assignee:   assignee,
        Status:     domain.CanonicalStatus(raw.StatusKey),
        CreatedAt:  created,
        UpdatedAt:  updated,
        ResolvedAt: resolved,
        ParentKey:  raw.ParentKey,
        Priority:   raw.Priority,
    }, nil
}

// NormalizeChangelog extracts status transitions from raw changelog entries.
// Entries with a bad timestamp and transitions without a target are dropped.
// The result is sorted by time; equal timestamps keep log order.
func NormalizeChangelog(records []domain.ChangeRecord) []domain.StatusChangeEvent {
    var out []domain.StatusChangeEvent
    for _, rec := range records {
        at, err := ParseTime(rec.UpdatedAt)
        if err != nil {
            continue
        }
        for _, f := range rec.Fields {
            if f.Field != statusField || f.To == "" {
                continue
            }
            out = append(out, domain.StatusChangeEvent{
                At:   at,
                From: domain.CanonicalStatus(f.From),
                To:   domain.CanonicalStatus(f.To),
            })
        }
    }
    sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
    return out
}
