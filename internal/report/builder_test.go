package report

import (
    "testing"
    "time"

    "github.com/HamedShams/tracker-report/internal/analysis"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func at(m time.Month, d int) time.Time { return time.Date(2025, m, d, 9, 0, 0, 0, time.UTC) }

func jan() analysis.Month {
    return analysis.NewMonth(domain.Period{Year: 2025, Month: time.January}, time.UTC)
}

func TestBuildCreatedWithinMonth(t *testing.T) {
    b := NewBuilder("https://tracker.example.com/")
    task := domain.Task{Key: "T1", Project: "Support", Status: domain.StatusOpen, CreatedAt: at(time.January, 5), UpdatedAt: at(time.January, 5)}
    row, ok := b.Build(task, domain.HierarchyInfo{Section: domain.LabelContainer}, jan())
    require.True(t, ok)
    assert.Equal(t, domain.LabelNotCreated, row.StatusOnFirst)
    assert.Equal(t, "https://tracker.example.com/T1", row.Link)
    assert.Equal(t, "01.2025", row.Period.Label())
    assert.True(t, row.WasOpen, "created open during the month")
    assert.False(t, row.WasInProgress)
    assert.False(t, row.ClosedInMonth)
    assert.Nil(t, row.Open.First)
}

func TestBuildCameToProgressAndClosed(t *testing.T) {
    task := domain.Task{
        Key:       "T2",
        Status:    domain.StatusClosed,
        CreatedAt: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
        History: []domain.StatusChangeEvent{
            {At: at(time.January, 10), From: domain.StatusOpen, To: domain.StatusInProgress},
            {At: at(time.January, 20), From: domain.StatusInProgress, To: domain.StatusClosed},
        },
    }
    row, ok := NewBuilder("").Build(task, domain.HierarchyInfo{Section: "Epic", NestingLevel: 1}, jan())
    require.True(t, ok)
    assert.Equal(t, "Open", row.StatusOnFirst)
    assert.Equal(t, "Closed", row.CurrentStatus)
    assert.Equal(t, "T2", row.Link)
    assert.True(t, row.WasOpen)
    assert.True(t, row.WasInProgress)
    assert.False(t, row.WasPaused)
    assert.True(t, row.ClosedInMonth)
    require.NotNil(t, row.InProgress.First)
    assert.Equal(t, at(time.January, 10), *row.InProgress.First)
    assert.Equal(t, at(time.January, 20), *row.Closed.Last)
    assert.Equal(t, "Epic", row.Section)
    assert.Equal(t, 1, row.NestingLevel)
}

func TestBuildExcludesClosedHoldover(t *testing.T) {
    task := domain.Task{
        Key:       "T3",
        Status:    domain.StatusClosed,
        CreatedAt: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
        History:   []domain.StatusChangeEvent{{At: time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC), From: domain.StatusOpen, To: domain.StatusClosed}},
    }
    _, ok := NewBuilder("").Build(task, domain.HierarchyInfo{}, jan())
    assert.False(t, ok)
}
