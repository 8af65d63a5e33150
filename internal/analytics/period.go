package analytics

import (
	"fmt"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

const (
	DefaultLookbackDays = 30
	MaxLookbackDays     = 3650
)

// Windows holds the reporting window and the equally long window right before it.
type Windows struct {
	Current  entity.TimeRange
	Previous entity.TimeRange
}

// ComputeWindows returns the current window [now-days, now] and the previous
// window [now-2*days, now-days). Days are calendar days in loc.
func ComputeWindows(now time.Time, days int, loc *time.Location) (Windows, error) {
	if days <= 0 || days > MaxLookbackDays {
		return Windows{}, gerr.Validation(fmt.Sprintf("days must be within 1..%d", MaxLookbackDays))
	}
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	currentStart := now.AddDate(0, 0, -days)
	previousStart := currentStart.AddDate(0, 0, -days)

	return Windows{
		// the upper bound is exclusive, nudge it so an order stamped exactly at now counts
		Current:  entity.TimeRange{From: currentStart, To: now.Add(time.Nanosecond)},
		Previous: entity.TimeRange{From: previousStart, To: currentStart},
	}, nil
}
