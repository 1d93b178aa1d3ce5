/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package excel

import (
    "bytes"
    "fmt"
    "io"
    "os"
    "time"
    "unicode/utf8"

    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/tealeg/xlsx"
)

const (
    ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
    Extension   = ".xlsx"

    SheetTasks         = "All Tasks"
    SheetWorkAnalysis  = "Work Analysis"
    SheetSections      = "Section Summary"
    SheetStatusOnFirst = "Status On First"

    absent    = "-"
    maxWidth  = 60
    timestamp = "2006-01-02 15:04:05"
)

var taskHeader = []string{
    "Key", "Link", "Title", "Project", "Section", "Nesting Level", "Assignee",
    "Current Status", "Period", "Priority", "Created", "Updated", "Resolved",
    "Status On First", "Was Open", "Was In Progress", "Was Paused", "Was Need Info",
    "Closed In Month",
    "First Open", "Last Open", "First In Progress", "Last In Progress",
    "First Paused", "Last Paused", "First Closed", "Last Closed",
    "First Need Info", "Last Need Info",
}

// Exporter renders reports as xlsx workbooks. Timestamps are shown in loc.
type Exporter struct {
    loc *time.Location
}

func NewExporter(loc *time.Location) *Exporter {
    if loc == nil {
        loc = time.UTC
    }
    return &Exporter{loc: loc}
}

// Write renders rep as a four-sheet workbook into w.
func (e *Exporter) Write(w io.Writer, rep *domain.Report) error {
    f := xlsx.NewFile()
    steps := []struct {
        name string
        fill func(*sheet)
    }{
        {SheetTasks, func(s *sheet) { e.tasks(s, rep.Rows) }},
        {SheetWorkAnalysis, func(s *sheet) { workAnalysis(s, rep.WorkAnalysis) }},
        {SheetSections, func(s *sheet) { sections(s, rep.SectionSummary) }},
        {SheetStatusOnFirst, func(s *sheet) { statusOnFirst(s, rep.StatusOnFirst) }},
    }
    for _, st := range steps {
        xs, err := f.AddSheet(st.name)
        if err != nil {
            return fmt.Errorf("add sheet %s: %w", st.name, err)
        }
        s := &sheet{xs: xs}
        st.fill(s)
        if err := s.autofit(); err != nil {
            return fmt.Errorf("sheet %s: %w", st.name, err)
        }
    }
    return f.Write(w)
}

// Bytes renders rep into memory.
func (e *Exporter) Bytes(rep *domain.Report) ([]byte, error) {
    var buf bytes.Buffer
    if err := e.Write(&buf, rep); err != nil {
        return nil, err
    }
    return buf.Bytes(), nil
}

// WriteFile renders rep into path.
func (e *Exporter) WriteFile(path string, rep *domain.Report) error {
    b, err := e.Bytes(rep)
    if err != nil {
        return err
    }
    return os.WriteFile(path, b, 0o644)
}

func (e *Exporter) ts(t *time.Time) string {
    if t == nil {
        return absent
    }
    return t.In(e.loc).Format(timestamp)
}

func (e *Exporter) tasks(s *sheet, rows []domain.ReportRow) {
    s.header(taskHeader...)
    for _, r := range rows {
        created, updated := r.CreatedAt, r.UpdatedAt
        s.row(
            r.Key, r.Link, r.Title, r.Project, r.Section, r.NestingLevel, r.Assignee,
            r.CurrentStatus, r.Period.Label(), r.Priority,
            e.ts(&created), e.ts(&updated), e.ts(r.ResolvedAt),
            r.StatusOnFirst, flag(r.WasOpen), flag(r.WasInProgress), flag(r.WasPaused), flag(r.WasNeedInfo),
            flag(r.ClosedInMonth),
            e.ts(r.Open.First), e.ts(r.Open.Last),
            e.ts(r.InProgress.First), e.ts(r.InProgress.Last),
            e.ts(r.Paused.First), e.ts(r.Paused.Last),
            e.ts(r.Closed.First), e.ts(r.Closed.Last),
            e.ts(r.NeedInfo.First), e.ts(r.NeedInfo.Last),
        )
    }
}

func workAnalysis(s *sheet, rows []domain.WorkAnalysisRow) {
    s.header("Period", "Project", "In Progress At Start", "Came To Progress", "Total Active", "Done From Pool", "Remaining")
    for _, r := range rows {
        s.row(r.Period.Label(), r.Project, r.InProgressAtStart, r.CameToProgress, r.TotalActive, r.DoneFromPool, r.Remaining)
    }
}

func sections(s *sheet, rows []domain.SectionSummaryRow) {
    s.header("Period", "Project", "Section", "Total Tasks", "Was In Progress", "Closed")
    for _, r := range rows {
        s.row(r.Period.Label(), r.Project, r.Section, r.TotalTasks, r.WasInProgress, r.ClosedCount)
    }
}

func statusOnFirst(s *sheet, rows []domain.StatusOnFirstRow) {
    s.header("Period", "Project", "Total",
        domain.StatusOpen.Label(), domain.StatusInProgress.Label(), domain.StatusPaused.Label(),
        domain.StatusClosed.Label(), domain.StatusNeedInfo.Label())
    for _, r := range rows {
        s.row(r.Period.Label(), r.Project, r.Total, r.OpenCount, r.InProgressCount, r.PausedCount, r.ClosedCount, r.NeedInfoCount)
    }
}

func flag(b bool) int {
    if b {
        return 1
    }
    return 0
}

// sheet tracks the widest value per column while rows are added.
type sheet struct {
    xs     *xlsx.Sheet
    widths []int
}

func (s *sheet) header(names ...string) {
    vals := make([]any, len(names))
    for i, n := range names {
        vals[i] = n
    }
    s.row(vals...)
}

func (s *sheet) row(vals ...any) {
    r := s.xs.AddRow()
    for i, v := range vals {
        c := r.AddCell()
        var text string
        switch x := v.(type) {
        case int:
            c.SetInt(x)
            text = fmt.Sprint(x)
        case string:
            c.SetString(x)
            text = x
        default:
            text = fmt.Sprint(x)
            c.SetString(text)
        }
        for len(s.widths) <= i {
            s.widths = append(s.widths, 0)
        }
        if n := utf8.RuneCountInString(text); n > s.widths[i] {
            s.widths[i] = n
        }
    }
}

func (s *sheet) autofit() error {
    for i, w := range s.widths {
        if err := s.xs.SetColWidth(i, i, float64(min(w+2, maxWidth))); err != nil {
            return err
        }
    }
    return nil
}
