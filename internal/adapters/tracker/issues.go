/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package tracker

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/HamedShams/tracker-report/internal/domain"
)

// SearchQuery selects tasks touched in the month or open across it. Dates
// are padded by a day on each side; inclusion is decided locally.
func SearchQuery(project string, p domain.Period) string {
    from := p.Start(time.UTC).AddDate(0, 0, -1).Format("2006-01-02")
    to := p.End(time.UTC).AddDate(0, 0, 1).Format("2006-01-02")
    return fmt.Sprintf(
        `Project: %s AND ((Updated: >= "%s" AND Updated: < "%s") OR (Created: < "%s" AND (Resolved: empty() OR Resolved: >= "%s")))`,
        quote(project), from, to, to, from,
    )
}

func quote(s string) string {
    return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// ListTasks returns every task of project relevant to the period.
func (c *Client) ListTasks(ctx context.Context, project string, p domain.Period) ([]domain.RawTask, error) {
    body := map[string]string{"query": SearchQuery(project, p)}
    var out []domain.RawTask
    for page := 1; ; page++ {
        q := url.Values{}
        q.Set("perPage", strconv.Itoa(c.pageSize))
        q.Set("page", strconv.Itoa(page))
        var batch []issue
        h, err := c.doJSON(ctx, http.MethodPost, c.apiURL("/issues/_search", q), body, &batch)
        if err != nil {
            return nil, fmt.Errorf("search %s %s page %d: %w", project, p, page, err)
        }
        for _, is := range batch {
            out = append(out, is.raw())
        }
        if len(batch) < c.pageSize {
            break
        }
        if tp := totalPages(h); tp > 0 && page >= tp {
            break
        }
    }
    c.log.Debug().Str("project", project).Str("period", p.String()).Int("tasks", len(out)).Msg("tracker: tasks listed")
    return out, nil
}

// Changelog returns the full change history of a task, following id cursors.
func (c *Client) Changelog(ctx context.Context, key string) ([]domain.ChangeRecord, error) {
    var out []domain.ChangeRecord
    cursor := ""
    for {
        q := url.Values{}
        q.Set("perPage", strconv.Itoa(c.pageSize))
        if cursor != "" {
            q.Set("id", cursor)
        }
        var batch []changelogEntry
        if _, err := c.doJSON(ctx, http.MethodGet, c.apiURL("/issues/"+url.PathEscape(key)+"/changelog", q), nil, &batch); err != nil {
            return nil, fmt.Errorf("changelog %s: %w", key, err)
        }
        for _, e := range batch {
            out = append(out, e.record())
        }
        if len(batch) < c.pageSize {
            break
        }
        next := batch[len(batch)-1].ID
        if next == "" || next == cursor {
            break
        }
        cursor = next
    }
    return out, nil
}

// TaskSummary returns title and parent of a task, or nil when it does not exist.
func (c *Client) TaskSummary(ctx context.Context, key string) (*domain.TaskSummary, error) {
    q := url.Values{}
    q.Set("fields", "summary,parent")
    var is issue
    if _, err := c.doJSON(ctx, http.MethodGet, c.apiURL("/issues/"+url.PathEscape(key), q), nil, &is); err != nil {
        if errors.Is(err, ErrNotFound) {
            return nil, nil
        }
        return nil, fmt.Errorf("task %s: %w", key, err)
    }
    if is.Key == "" {
        is.Key = key
    }
    return &domain.TaskSummary{Key: is.Key, Title: is.Summary, ParentKey: is.Parent.key()}, nil
}

// Projects lists the projects visible to the token.
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
    var batch []project
    if _, err := c.doJSON(ctx, http.MethodGet, c.apiURL("/projects", nil), nil, &batch); err != nil {
        return nil, fmt.Errorf("projects: %w", err)
    }
    out := make([]domain.Project, 0, len(batch))
    for _, p := range batch {
        out = append(out, p.domain())
    }
    return out, nil
}
