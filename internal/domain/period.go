/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import (
    "errors"
    "fmt"
    "time"
)

// Period is a single reporting month.
type Period struct {
    Year  int
    Month time.Month
}

func NewPeriod(year, month int) (Period, error) {
    if month < 1 || month > 12 {
        return Period{}, fmt.Errorf("month %d out of range 1..12", month)
    }
    if year < 1 {
        return Period{}, errors.New("year must be positive")
    }
    return Period{Year: year, Month: time.Month(month)}, nil
}

// PeriodOf returns the month that contains t in loc.
func PeriodOf(t time.Time, loc *time.Location) Period {
    t = t.In(loc)
    return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod accepts YYYY-MM.
func ParsePeriod(s string) (Period, error) {
    t, err := time.Parse("2006-01", s)
    if err != nil {
        return Period{}, fmt.Errorf("parse period %q: want YYYY-MM", s)
    }
    return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Label is the MM.YYYY form used in report cells.
func (p Period) Label() string { return fmt.Sprintf("%02d.%d", int(p.Month), p.Year) }

func (p Period) String() string { return fmt.Sprintf("%d-%02d", p.Year, int(p.Month)) }

// Start is the first instant of the month in loc.
func (p Period) Start(loc *time.Location) time.Time {
    return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following month in loc.
func (p Period) End(loc *time.Location) time.Time { return p.Next().Start(loc) }

func (p Period) Next() Period {
    if p.Month == time.December {
        return Period{Year: p.Year + 1, Month: time.January}
    }
    return Period{Year: p.Year, Month: p.Month + 1}
}

func (p Period) Prev() Period {
    if p.Month == time.January {
        return Period{Year: p.Year - 1, Month: time.December}
    }
    return Period{Year: p.Year, Month: p.Month - 1}
}

func (p Period) Before(o Period) bool {
    if p.Year != o.Year {
        return p.Year < o.Year
    }
    return p.Month < o.Month
}

// Contains reports whether t falls within the month as observed in loc.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
    return PeriodOf(t, loc) == p
}

// Months lists every period from from to to inclusive. It returns nil when from is after to.
func Months(from, to Period) []Period {
    var out []Period
    for p := from; !to.Before(p); p = p.Next() {
        out = append(out, p)
    }
    return out
}
