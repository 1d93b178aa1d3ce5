/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package tracker

import (
    "encoding/json"
    "strings"

    "github.com/HamedShams/tracker-report/internal/domain"
)

// ref is the common {id,key,display} object used for statuses, users and links.
type ref struct {
    Key     string `json:"key"`
    Display string `json:"display"`
}

func (r *ref) key() string {
    if r == nil {
        return ""
    }
    return r.Key
}

func (r *ref) display() string {
    if r == nil {
        return ""
    }
    return r.Display
}

type issue struct {
    Key        string `json:"key"`
    Summary    string `json:"summary"`
    Status     *ref   `json:"status"`
    Assignee   *ref   `json:"assignee"`
    Priority   *ref   `json:"priority"`
    Parent     *ref   `json:"parent"`
    CreatedAt  string `json:"createdAt"`
    UpdatedAt  string `json:"updatedAt"`
    ResolvedAt string `json:"resolvedAt"`
}

func (i issue) raw() domain.RawTask {
    return domain.RawTask{
        Key:        i.Key,
        Summary:    i.Summary,
        StatusKey:  i.Status.key(),
        Assignee:   i.Assignee.display(),
        Priority:   i.Priority.display(),
        ParentKey:  i.Parent.key(),
        CreatedAt:  i.CreatedAt,
        UpdatedAt:  i.UpdatedAt,
        ResolvedAt: i.ResolvedAt,
    }
}

type fieldID struct {
    ID string `json:"id"`
}

// From and To vary in shape by field; only status transitions are decoded.
type fieldChange struct {
    Field fieldID         `json:"field"`
    From  json.RawMessage `json:"from"`
    To    json.RawMessage `json:"to"`
}

type changelogEntry struct {
    ID        string        `json:"id"`
    UpdatedAt string        `json:"updatedAt"`
    Fields    []fieldChange `json:"fields"`
}

func refKey(raw json.RawMessage) (string, bool) {
    if len(raw) == 0 || string(raw) == "null" {
        return "", true
    }
    var r ref
    if err := json.Unmarshal(raw, &r); err != nil {
        return "", false
    }
    return r.Key, true
}

func (e changelogEntry) record() domain.ChangeRecord {
    rec := domain.ChangeRecord{ID: e.ID, UpdatedAt: e.UpdatedAt}
    for _, f := range e.Fields {
        if f.Field.ID != "status" {
            continue
        }
        from, ok1 := refKey(f.From)
        to, ok2 := refKey(f.To)
        if !ok1 || !ok2 {
            continue
        }
        rec.Fields = append(rec.Fields, domain.FieldChange{Field: f.Field.ID, From: from, To: to})
    }
    return rec
}

type project struct {
    ID          json.RawMessage `json:"id"`
    Name        string          `json:"name"`
    Description string          `json:"description"`
}

func (p project) domain() domain.Project {
    return domain.Project{
        ID:          strings.Trim(string(p.ID), `"`),
        Name:        p.Name,
        Description: p.Description,
    }
}
