package analysis

import (
    "testing"
    "time"

    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseTimeLayouts(t *testing.T) {
    want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
    for _, s := range []string{
        "2025-03-10T09:30:00Z",
        "2025-03-10T12:30:00+03:00",
        "2025-03-10T09:30:00.000+0000",
        "2025-03-10T12:30:00+0300",
    } {
        got, err := ParseTime(s)
        require.NoError(t, err, s)
        assert.True(t, want.Equal(got), s)
        assert.Equal(t, time.UTC, got.Location())
    }
    _, err := ParseTime("10.03.2025")
    assert.Error(t, err)
    _, err = ParseTime(" ")
    assert.Error(t, err)
}

func TestParseTask(t *testing.T) {
    raw := domain.RawTask{
        Key:        "SUP-1",
        Summary:    "Pump vibration",
        StatusKey:  "onHold",
        CreatedAt:  "2025-01-05T10:00:00.000+0000",
        UpdatedAt:  "2025-01-07T10:00:00.000+0000",
        ResolvedAt: "2025-01-06T10:00:00.000+0000",
        ParentKey:  "SUP-0",
        Priority:   "Normal",
    }
    task, err := ParseTask(raw, "Support")
    require.NoError(t, err)
    assert.Equal(t, domain.StatusPaused, task.Status)
    assert.Equal(t, "Support", task.Project)
    assert.Equal(t, domain.LabelUnassigned, task.Assignee)
    require.NotNil(t, task.ResolvedAt)
    assert.Equal(t, "SUP-0", task.ParentKey)
    assert.Empty(t, task.History)
}

func TestParseTaskRejectsMalformed(t *testing.T) {
    good := domain.RawTask{Key: "A-1", StatusKey: "open", CreatedAt: "2025-01-01T00:00:00Z", UpdatedAt: "2025-01-01T00:00:00Z"}
    cases := map[string]func(r *domain.RawTask){
        "no key":      func(r *domain.RawTask) { r.Key = "" },
        "no status":   func(r *domain.RawTask) { r.StatusKey = "" },
        "bad created": func(r *domain.RawTask) { r.CreatedAt = "yesterday" },
        "no updated":  func(r *domain.RawTask) { r.UpdatedAt = "" },
    }
    for name, mutate := range cases {
        t.Run(name, func(t *testing.T) {
            r := good
            mutate(&r)
            _, err := ParseTask(r, "P")
            assert.Error(t, err)
        })
    }
}

func TestNormalizeChangelog(t *testing.T) {
    records := []domain.ChangeRecord{
        {UpdatedAt: "2025-02-10T10:00:00Z", Fields: []domain.FieldChange{
            {Field: "status", From: "inProgress", To: "onHold"},
            {Field: "assignee", From: "a", To: "b"},
        }},
        {UpdatedAt: "not a time", Fields: []domain.FieldChange{{Field: "status", From: "open", To: "closed"}}},
        {UpdatedAt: "2025-02-01T10:00:00Z", Fields: []domain.FieldChange{{Field: "status", From: "open", To: "inProgress"}}},
        {UpdatedAt: "2025-02-01T10:00:00Z", Fields: []domain.FieldChange{{Field: "status", From: "inProgress", To: "needInfo"}}},
        {UpdatedAt: "2025-02-11T10:00:00Z", Fields: []domain.FieldChange{{Field: "status", From: "paused", To: ""}}},
    }
    got := NormalizeChangelog(records)
    require.Len(t, got, 3)
    assert.Equal(t, domain.StatusInProgress, got[0].To, "stable order for equal timestamps")
    assert.Equal(t, domain.StatusNeedInfo, got[1].To)
    assert.Equal(t, domain.StatusPaused, got[2].To, "onHold is canonicalised")
    assert.Equal(t, domain.StatusInProgress, got[2].From)
}
