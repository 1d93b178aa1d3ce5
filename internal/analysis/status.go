/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "time"

    "github.com/HamedShams/tracker-report/internal/domain"
)

// StatusOn returns the status the task held at the given instant.
// ok is false when the task did not exist yet.
func StatusOn(task domain.Task, at time.Time) (status domain.Status, ok bool) {
    if at.Before(task.CreatedAt) {
        return "", false
    }
    status = task.Status
    // Undo every transition that happened after at, newest first. An
    // unknown source status leaves the earliest known one in place.
    for i := len(task.History) - 1; i >= 0; i-- {
        ev := task.History[i]
        if !ev.At.After(at) {
            break
        }
        if ev.From != "" {
            status = ev.From
        }
    }
    return status, true
}

// Month evaluates tasks against one reporting month in a fixed location.
type Month struct {
    Period domain.Period
    Loc    *time.Location
}

func NewMonth(p domain.Period, loc *time.Location) Month {
    if loc == nil {
        loc = time.UTC
    }
    return Month{Period: p, Loc: loc}
}

// StatusOnFirst is the status held at the first instant of the month.
func (m Month) StatusOnFirst(task domain.Task) (domain.Status, bool) {
    return StatusOn(task, m.Period.Start(m.Loc))
}

func (m Month) contains(t time.Time) bool { return m.Period.Contains(t, m.Loc) }

// HasActivity reports whether any status transition happened within the month.
func (m Month) HasActivity(task domain.Task) bool {
    for _, ev := range task.History {
        if m.contains(ev.At) {
            return true
        }
    }
    return false
}

// ShouldInclude decides report membership: the task moved during the month,
// was not closed at its start, or was created during it.
func (m Month) ShouldInclude(task domain.Task, onFirst domain.Status, existed bool) bool {
    if m.HasActivity(task) {
        return true
    }
    if existed && onFirst != domain.StatusClosed {
        return true
    }
    return !existed && m.contains(task.CreatedAt)
}

// StatusDates returns the earliest and latest transitions into status within the month.
func (m Month) StatusDates(task domain.Task, status domain.Status) (first, last *time.Time) {
    status = domain.CanonicalStatus(string(status))
    for _, ev := range task.History {
        if ev.To != status || !m.contains(ev.At) {
            continue
        }
        at := ev.At
        if first == nil || at.Before(*first) {
            first = &at
        }
        if last == nil || at.After(*last) {
            last = &at
        }
    }
    return first, last
}

// Window is StatusDates as a StatusWindow.
func (m Month) Window(task domain.Task, status domain.Status) domain.StatusWindow {
    first, last := m.StatusDates(task, status)
    return domain.StatusWindow{First: first, Last: last}
}

// WasInStatus reports whether the task held status at the start of the month
// or moved into it during the month. A task created during the month counts
// the status it was created in.
func (m Month) WasInStatus(task domain.Task, status domain.Status, onFirst domain.Status, existed bool) bool {
    status = domain.CanonicalStatus(string(status))
    if existed && onFirst == status {
        return true
    }
    if !existed && m.contains(task.CreatedAt) {
        if initial, _ := StatusOn(task, task.CreatedAt); initial == status {
            return true
        }
    }
    first, _ := m.StatusDates(task, status)
    return first != nil
}
