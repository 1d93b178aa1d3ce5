package domain

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestStatusLabels(t *testing.T) {
    assert.Equal(t, "In Progress", StatusInProgress.Label())
    assert.Equal(t, "Paused", CanonicalStatus("onHold").Label())
    assert.Equal(t, "Paused", Status("onHold").Label())
    assert.Equal(t, "resolvedByBot", Status("resolvedByBot").Label(), "unknown codes pass through")
    assert.Equal(t, Status("resolvedByBot"), CanonicalStatus("resolvedByBot"))
    assert.True(t, StatusNeedInfo.Tracked())
    assert.False(t, Status("onHold").Tracked())
}

func TestPeriodArithmetic(t *testing.T) {
    p, err := NewPeriod(2024, 12)
    require.NoError(t, err)
    assert.Equal(t, Period{Year: 2025, Month: time.January}, p.Next())
    assert.Equal(t, Period{Year: 2024, Month: time.November}, p.Prev())
    assert.Equal(t, "12.2024", p.Label())
    assert.Equal(t, "2024-12", p.String())
    assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.End(time.UTC))

    _, err = NewPeriod(2024, 13)
    assert.Error(t, err)

    q, err := ParsePeriod("2025-03")
    require.NoError(t, err)
    assert.Equal(t, Period{Year: 2025, Month: time.March}, q)
    _, err = ParsePeriod("03.2025")
    assert.Error(t, err)
}

func TestMonths(t *testing.T) {
    from := Period{Year: 2024, Month: time.November}
    to := Period{Year: 2025, Month: time.February}
    got := Months(from, to)
    require.Len(t, got, 4)
    assert.Equal(t, from, got[0])
    assert.Equal(t, to, got[3])
    assert.Nil(t, Months(to, from))
    assert.Len(t, Months(from, from), 1)
}

func TestPeriodContainsUsesLocation(t *testing.T) {
    loc := time.FixedZone("UTC+3", 3*3600)
    p := Period{Year: 2025, Month: time.April}
    // 22:00 UTC on March 31 is already April 1 at UTC+3.
    ts := time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)
    assert.True(t, p.Contains(ts, loc))
    assert.False(t, p.Contains(ts, time.UTC))
}

func TestReportFilename(t *testing.T) {
    r := &Report{From: Period{Year: 2025, Month: time.October}, To: Period{Year: 2025, Month: time.November}}
    assert.Equal(t, "Tracker_Report_2025_10-2025_11.xlsx", r.Filename())
}
