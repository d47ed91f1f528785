package order

import (
	"fmt"
	"strings"

	"cafe/internal/pkg/errs"
)

// ItemStatus is the preparation state of a line item.
//
//	NotStarted ──> Started ──> Finished
//	     ^            │           │
//	     └────────────┴───────────┘
//	        (corrections allowed)
//
// The arrows show the normal kitchen flow only. Any authorized caller may set any
// valid status at any time; no ordering is enforced.
type ItemStatus int

const (
	// UnknownStatus is the zero value and is never valid.
	UnknownStatus ItemStatus = iota

	// NotStarted is the status of a freshly attached item. Comments are accepted only here.
	NotStarted

	// Started means the kitchen is preparing the item.
	Started

	// Finished means the item is ready.
	Finished
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		UnknownStatus: "Unknown",
		NotStarted:    "NotStarted",
		Started:       "Started",
		Finished:      "Finished",
	}
}

// legacyItemStatuses maps normalized spellings, including the historical
// "Hasn't started" / "Hasn't Started" pair, to the closed enumeration.
var legacyItemStatuses = map[string]ItemStatus{
	"notstarted":   NotStarted,
	"hasntstarted": NotStarted,
	"started":      Started,
	"finished":     Finished,
}

// ParseItemStatus accepts the canonical names case-insensitively, with or without
// separators ("not_started", "Not Started"), and the legacy "Hasn't started" text.
func ParseItemStatus(s string) (ItemStatus, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\'':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	if status, ok := legacyItemStatuses[normalized]; ok {
		return status, nil
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of NotStarted, Started or Finished.
func (s ItemStatus) Validate() error {
	if s != NotStarted && s != Started && s != Finished {
		return errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe for invalid values.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// AcceptsComments reports whether a comment may still be attached to an item in this status.
func (s ItemStatus) AcceptsComments() bool {
	return s == NotStarted
}
