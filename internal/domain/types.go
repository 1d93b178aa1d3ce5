/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import (
    "fmt"
    "time"
)

// RawTask is a task record as delivered by the tracker, before parsing.
type RawTask struct {
    Key        string
    Summary    string
    StatusKey  string
    Assignee   string
    Priority   string
    ParentKey  string
    CreatedAt  string
    UpdatedAt  string
    ResolvedAt string
}

// FieldChange is one field transition inside a changelog entry.
type FieldChange struct {
    Field string
    From  string
    To    string
}

// ChangeRecord is one changelog entry as delivered by the tracker.
type ChangeRecord struct {
    ID        string
    UpdatedAt string
    Fields    []FieldChange
}

// TaskSummary is the subset of a task needed to walk the parent chain.
type TaskSummary struct {
    Key       string
    Title     string
    ParentKey string
}

type Project struct {
    ID          string `json:"id"`
    Name        string `json:"name"`
    Description string `json:"description"`
}

// StatusChangeEvent is a single status transition. Values are immutable once built.
type StatusChangeEvent struct {
    At   time.Time
    From Status
    To   Status
}

// Task is a parsed tracker task. History is sorted ascending by At.
type Task struct {
    Key        string
    Title      string
    Project    string
    Assignee   string
    Status     Status
    CreatedAt  time.Time
    UpdatedAt  time.Time
    ResolvedAt *time.Time
    ParentKey  string
    Priority   string
    History    []StatusChangeEvent
}

type HierarchyInfo struct {
    Section      string
    NestingLevel int
}

// StatusWindow holds the first and last transition into a status within a month.
type StatusWindow struct {
    First *time.Time
    Last  *time.Time
}

// ReportRow is one task in one reporting month.
type ReportRow struct {
    Key           string
    Link          string
    Title         string
    Project       string
    Section       string
    NestingLevel  int
    Assignee      string
    CurrentStatus string
    Period        Period
    Priority      string
    CreatedAt     time.Time
    UpdatedAt     time.Time
    ResolvedAt    *time.Time
    StatusOnFirst string

    WasOpen       bool
    WasInProgress bool
    WasPaused     bool
    WasNeedInfo   bool
    ClosedInMonth bool

    Open       StatusWindow
    InProgress StatusWindow
    Paused     StatusWindow
    Closed     StatusWindow
    NeedInfo   StatusWindow
}

type WorkAnalysisRow struct {
    Period            Period
    Project           string
    InProgressAtStart int
    CameToProgress    int
    TotalActive       int
    DoneFromPool      int
    Remaining         int
}

type SectionSummaryRow struct {
    Period        Period
    Project       string
    Section       string
    TotalTasks    int
    WasInProgress int
    ClosedCount   int
}

type StatusOnFirstRow struct {
    Period          Period
    Project         string
    Total           int
    OpenCount       int
    InProgressCount int
    PausedCount     int
    ClosedCount     int
    NeedInfoCount   int
}

// Report is the full output of one generation run.
type Report struct {
    From           Period
    To             Period
    Rows           []ReportRow
    WorkAnalysis   []WorkAnalysisRow
    SectionSummary []SectionSummaryRow
    StatusOnFirst  []StatusOnFirstRow
}

// Filename is the attachment name of the exported workbook.
func (r *Report) Filename() string { return ReportFilename(r.From, r.To) }

func ReportFilename(from, to Period) string {
    return fmt.Sprintf("Tracker_Report_%d_%02d-%d_%02d.xlsx", from.Year, int(from.Month), to.Year, int(to.Month))
}
