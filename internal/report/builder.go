/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
    "strings"

    "github.com/HamedShams/tracker-report/internal/analysis"
    "github.com/HamedShams/tracker-report/internal/domain"
)

// Builder turns analysed tasks into report rows.
type Builder struct {
    webURL string
}

func NewBuilder(webURL string) Builder {
    return Builder{webURL: strings.TrimRight(webURL, "/")}
}

// Link is the browser URL of a task.
func (b Builder) Link(key string) string {
    if b.webURL == "" {
        return key
    }
    return b.webURL + "/" + key
}

// Build returns the row for task in month m, and false when the task does not
// belong to that month's report.
func (b Builder) Build(task domain.Task, hi domain.HierarchyInfo, m analysis.Month) (domain.ReportRow, bool) {
    onFirst, existed := m.StatusOnFirst(task)
    if !m.ShouldInclude(task, onFirst, existed) {
        return domain.ReportRow{}, false
    }
    label := domain.LabelNotCreated
    if existed {
        label = onFirst.Label()
    }
    was := func(s domain.Status) bool { return m.WasInStatus(task, s, onFirst, existed) }
    row := domain.ReportRow{
        Key:           task.Key,
        Link:          b.Link(task.Key),
        Title:         task.Title,
        Project:       task.Project,
        Section:       hi.Section,
        NestingLevel:  hi.NestingLevel,
        Assignee:      task.Assignee,
        CurrentStatus: task.Status.Label(),
        Period:        m.Period,
        Priority:      task.Priority,
        CreatedAt:     task.CreatedAt,
        UpdatedAt:     task.UpdatedAt,
        ResolvedAt:    task.ResolvedAt,
        StatusOnFirst: label,

        WasOpen:       was(domain.StatusOpen),
        WasInProgress: was(domain.StatusInProgress),
        WasPaused:     was(domain.StatusPaused),
        WasNeedInfo:   was(domain.StatusNeedInfo),

        Open:       m.Window(task, domain.StatusOpen),
        InProgress: m.Window(task, domain.StatusInProgress),
        Paused:     m.Window(task, domain.StatusPaused),
        Closed:     m.Window(task, domain.StatusClosed),
        NeedInfo:   m.Window(task, domain.StatusNeedInfo),
    }
    row.ClosedInMonth = row.Closed.Last != nil
    return row, true
}
