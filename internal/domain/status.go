/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

// Status is a canonical tracker status key.
type Status string

const (
    StatusOpen       Status = "open"
    StatusInProgress Status = "inProgress"
    StatusPaused     Status = "paused"
    StatusClosed     Status = "closed"
    StatusNeedInfo   Status = "needInfo"
)

// Labels used in report cells that are not statuses.
const (
    LabelNotCreated = "Not Created"
    LabelContainer  = "Container"
    LabelUnresolved = "Unresolved"
    LabelUntitled   = "Untitled"
    LabelUnassigned = "Unassigned"
)

// TrackedStatuses is the fixed order used for flags, timestamps and pivot columns.
var TrackedStatuses = []Status{StatusOpen, StatusInProgress, StatusPaused, StatusClosed, StatusNeedInfo}

// aliases maps raw codes that share a canonical status.
var aliases = map[string]Status{
    "onHold": StatusPaused,
}

var labels = map[Status]string{
    StatusOpen:       "Open",
    StatusInProgress: "In Progress",
    StatusPaused:     "Paused",
    StatusClosed:     "Closed",
    StatusNeedInfo:   "Need Info",
}

// CanonicalStatus maps a raw status code to its canonical key. Unknown codes pass through.
func CanonicalStatus(code string) Status {
    if s, ok := aliases[code]; ok {
        return s
    }
    return Status(code)
}

// Label returns the display label of the status, or the raw code when it is not tracked.
func (s Status) Label() string {
    if l, ok := labels[s]; ok {
        return l
    }
    if c, ok := aliases[string(s)]; ok {
        return labels[c]
    }
    return string(s)
}

// Tracked reports whether s belongs to the closed status vocabulary.
func (s Status) Tracked() bool {
    _, ok := labels[s]
    return ok
}
