/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
    "sort"

    "github.com/HamedShams/tracker-report/internal/domain"
)

type projectKey struct {
    period  domain.Period
    project string
}

type sectionKey struct {
    projectKey
    section string
}

func (k projectKey) less(o projectKey) bool {
    if k.period != o.period {
        return k.period.Before(o.period)
    }
    return k.project < o.project
}

func (k sectionKey) less(o sectionKey) bool {
    if k.projectKey != o.projectKey {
        return k.projectKey.less(o.projectKey)
    }
    return k.section < o.section
}

func groupByProject(rows []domain.ReportRow) ([]projectKey, map[projectKey][]domain.ReportRow) {
    groups := map[projectKey][]domain.ReportRow{}
    var keys []projectKey
    for _, r := range rows {
        k := projectKey{period: r.Period, project: r.Project}
        if _, ok := groups[k]; !ok {
            keys = append(keys, k)
        }
        groups[k] = append(groups[k], r)
    }
    sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
    return keys, groups
}

func btoi(b bool) int {
    if b {
        return 1
    }
    return 0
}

// WorkAnalysis summarises movement through the in-progress status per period and project.
func WorkAnalysis(rows []domain.ReportRow) []domain.WorkAnalysisRow {
    inProgress := domain.StatusInProgress.Label()
    keys, groups := groupByProject(rows)
    out := make([]domain.WorkAnalysisRow, 0, len(keys))
    for _, k := range keys {
        w := domain.WorkAnalysisRow{Period: k.period, Project: k.project}
        for _, r := range groups[k] {
            if r.StatusOnFirst == inProgress {
                w.InProgressAtStart++
            } else if r.WasInProgress {
                w.CameToProgress++
            }
            w.TotalActive += btoi(r.WasInProgress)
            if r.WasInProgress && r.ClosedInMonth {
                w.DoneFromPool++
            }
        }
        w.Remaining = w.TotalActive - w.DoneFromPool
        out = append(out, w)
    }
    return out
}

// SectionSummary counts rows per period, project and section.
func SectionSummary(rows []domain.ReportRow) []domain.SectionSummaryRow {
    groups := map[sectionKey]*domain.SectionSummaryRow{}
    var keys []sectionKey
    for _, r := range rows {
        k := sectionKey{projectKey: projectKey{period: r.Period, project: r.Project}, section: r.Section}
        s, ok := groups[k]
        if !ok {
            s = &domain.SectionSummaryRow{Period: r.Period, Project: r.Project, Section: r.Section}
            groups[k] = s
            keys = append(keys, k)
        }
        s.TotalTasks++
        s.WasInProgress += btoi(r.WasInProgress)
        s.ClosedCount += btoi(r.ClosedInMonth)
    }
    sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
    out := make([]domain.SectionSummaryRow, 0, len(keys))
    for _, k := range keys {
        out = append(out, *groups[k])
    }
    return out
}

// StatusOnFirst distributes rows over their start-of-month status per period and project.
// Rows whose task did not exist yet count towards Total only.
func StatusOnFirst(rows []domain.ReportRow) []domain.StatusOnFirstRow {
    keys, groups := groupByProject(rows)
    out := make([]domain.StatusOnFirstRow, 0, len(keys))
    for _, k := range keys {
        counts := map[string]int{}
        for _, r := range groups[k] {
            counts[r.StatusOnFirst]++
        }
        out = append(out, domain.StatusOnFirstRow{
            Period:          k.period,
            Project:         k.project,
            Total:           len(groups[k]),
            OpenCount:       counts[domain.StatusOpen.Label()],
            InProgressCount: counts[domain.StatusInProgress.Label()],
            PausedCount:     counts[domain.StatusPaused.Label()],
            ClosedCount:     counts[domain.StatusClosed.Label()],
            NeedInfoCount:   counts[domain.StatusNeedInfo.Label()],
        })
    }
    return out
}

// Assemble builds the report bundle from the full row collection.
func Assemble(from, to domain.Period, rows []domain.ReportRow) *domain.Report {
    return &domain.Report{
        From:           from,
        To:             to,
        Rows:           rows,
        WorkAnalysis:   WorkAnalysis(rows),
        SectionSummary: SectionSummary(rows),
        StatusOnFirst:  StatusOnFirst(rows),
    }
}
