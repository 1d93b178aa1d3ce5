/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package tracker

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/cenkalti/backoff/v4"
    "github.com/rs/zerolog"
)

// ErrNotFound is returned for 404 replies.
var ErrNotFound = errors.New("tracker: not found")

// StatusError is a non-2xx reply from the API.
type StatusError struct {
    Code int
    Body string
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("tracker api status=%d body=%s", e.Code, e.Body)
}

// Temporary reports whether the request is worth retrying.
func (e *StatusError) Temporary() bool {
    return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

type Client struct {
    baseURL      string
    token        string
    orgID        string
    orgHeader    string
    http         *http.Client
    log          zerolog.Logger
    attempts     int
    retryInitial time.Duration
    pageSize     int
}

func NewClient(cfg config.TrackerConfig, log zerolog.Logger) *Client {
    c := &Client{
        baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
        token:        cfg.Token,
        orgID:        cfg.OrgID,
        orgHeader:    cfg.OrgHeader,
        http:         &http.Client{Timeout: cfg.Timeout},
        log:          log,
        attempts:     cfg.MaxRetries,
        retryInitial: cfg.RetryInitial,
        pageSize:     cfg.PageSize,
    }
    if c.orgHeader == "" {
        c.orgHeader = "X-Org-ID"
    }
    if c.attempts < 1 {
        c.attempts = 1
    }
    if c.retryInitial <= 0 {
        c.retryInitial = time.Second
    }
    if c.pageSize <= 0 {
        c.pageSize = 100
    }
    return c
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") {
        path = "/" + path
    }
    u := c.baseURL + path
    if len(q) > 0 {
        u = u + "?" + q.Encode()
    }
    return u
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
    bo := backoff.NewExponentialBackOff()
    bo.InitialInterval = c.retryInitial
    bo.RandomizationFactor = 0.5
    bo.MaxInterval = 30 * time.Second
    bo.MaxElapsedTime = 0
    return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.attempts-1)), ctx)
}

// doJSON sends the request and decodes the JSON reply into out. Transport
// errors, 429 and 5xx are retried with jittered exponential backoff.
func (c *Client) doJSON(ctx context.Context, method, u string, body any, out any) (http.Header, error) {
    if c.baseURL == "" {
        return nil, errors.New("tracker: empty baseURL")
    }
    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil {
            return nil, err
        }
        payload = b
    }
    var header http.Header
    op := func() error {
        var r io.Reader
        if payload != nil {
            r = bytes.NewReader(payload)
        }
        req, err := http.NewRequestWithContext(ctx, method, u, r)
        if err != nil {
            return backoff.Permanent(err)
        }
        if payload != nil {
            req.Header.Set("Content-Type", "application/json")
        }
        req.Header.Set("Authorization", "OAuth "+c.token)
        req.Header.Set(c.orgHeader, c.orgID)
        resp, err := c.http.Do(req)
        if err != nil {
            if ctx.Err() != nil {
                return backoff.Permanent(ctx.Err())
            }
            return err
        }
        defer resp.Body.Close()
        if resp.StatusCode == http.StatusNotFound {
            return backoff.Permanent(ErrNotFound)
        }
        if resp.StatusCode >= 300 {
            b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
            se := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
            if se.Temporary() {
                return se
            }
            return backoff.Permanent(se)
        }
        header = resp.Header
        if out == nil {
            return nil
        }
        if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
            return backoff.Permanent(fmt.Errorf("decode %s: %w", u, err))
        }
        return nil
    }
    notify := func(err error, wait time.Duration) {
        c.log.Warn().Err(err).Str("url", u).Dur("wait", wait).Msg("tracker: retrying request")
    }
    if err := backoff.RetryNotify(op, c.newBackOff(ctx), notify); err != nil {
        return nil, err
    }
    return header, nil
}

func totalPages(h http.Header) int {
    n, err := strconv.Atoi(h.Get("X-Total-Pages"))
    if err != nil {
        return 0
    }
    return n
}
